package checker

import (
	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/types"
)

func (c *Checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		c.checkExpr(n.X)
	case *ast.Let:
		c.checkLet(n)
	case *ast.Return:
		if n.Value != nil {
			c.checkExpr(n.Value)
		}
	case *ast.Break:
		// no constraints
	case *ast.StructDef, *ast.EnumDef:
		// nested declarations carry no executable constraints
	default:
		// If/While arriving as statements (pre-promotion) recurse as expressions
		if e, ok := s.(ast.Expr); ok {
			c.checkExpr(e)
		}
	}
}

func (c *Checker) checkLet(l *ast.Let) {
	c.checkExpr(l.Init)
	declared := l.Var.Type
	inferred := ast.TypeOf(l.Init)
	if declared != nil && !types.Equal(declared, inferred) {
		c.typeMismatch(l, "let binding", declared, inferred)
	}
}

func (c *Checker) checkBody(body []ast.Stmt) {
	for _, s := range body {
		c.checkStmt(s)
	}
}
