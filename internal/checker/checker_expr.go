package checker

import (
	"fmt"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/builtins"
	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/types"
)

// checkExpr recurses into e, validating the rules spec §4.7 attaches to
// assignment, binary, call, get, and if/while; every other node kind
// recurses into its children with no additional constraint.
func (c *Checker) checkExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Assignment:
		c.checkAssignment(n)
	case *ast.Binary:
		c.checkBinary(n)
	case *ast.Call:
		c.checkCall(n)
	case *ast.Get:
		c.checkGet(n)
	case *ast.If:
		c.checkExpr(n.Cond)
		c.checkBody(n.Then)
		c.checkBody(n.Else)
	case *ast.While:
		c.checkExpr(n.Cond)
		c.checkBody(n.Body)
	case *ast.Unary:
		c.checkExpr(n.Operand)
	case *ast.Cast:
		c.checkExpr(n.Operand)
	case *ast.ArrayDeref:
		c.checkExpr(n.Indexable)
		c.checkExpr(n.Index)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			c.checkExpr(el)
		}
	case *ast.StructValue:
		c.checkStructValue(n)
	case *ast.Number, *ast.StringLit, *ast.Literal, *ast.Variable, *ast.SizeOf, *ast.Builtin, *ast.TypeExprNode:
		// leaves: no further constraints
	}
}

func (c *Checker) checkAssignment(a *ast.Assignment) {
	c.checkExpr(a.LHS)
	c.checkExpr(a.RHS)
	if !ast.IsValidAssignTarget(a.LHS) {
		c.report(a, diag.CodeTypeBadAssignTarget, "invalid assignment target")
		return
	}
	lhsType := ast.TypeOf(a.LHS)
	rhsType := ast.TypeOf(a.RHS)
	if !types.Equal(lhsType, rhsType) {
		c.typeMismatch(a, "assignment", lhsType, rhsType)
		return
	}
	if lhsType != nil && !lhsType.Mutable {
		c.report(a, diag.CodeTypeNotMutable,
			fmt.Sprintf("cannot assign to immutable value of type %s", lhsType.String()))
	}
}

func (c *Checker) checkBinary(b *ast.Binary) {
	c.checkExpr(b.Left)
	c.checkExpr(b.Right)
	lt := ast.TypeOf(b.Left)
	rt := ast.TypeOf(b.Right)
	if !types.Equal(lt, rt) {
		c.typeMismatch(b, "binary expression", lt, rt)
	}
}

func (c *Checker) checkGet(g *ast.Get) {
	c.checkExpr(g.Receiver)
	recvType := ast.TypeOf(g.Receiver)
	if recvType == nil {
		return
	}
	base := recvType
	for base != nil && base.Base == types.Ptr {
		base = base.Inner
	}
	if base == nil {
		return
	}
	isEnumBase := base.Base == types.Enum
	if isEnumBase != g.IsEnum {
		kind := "struct"
		if g.IsEnum {
			kind = "enum"
		}
		c.report(g, diag.CodeTypeKindMismatch,
			fmt.Sprintf("get-expression expects %s, receiver has type %s", kind, recvType.String()))
	}
}

func (c *Checker) checkStructValue(sv *ast.StructValue) {
	for _, f := range sv.Fields {
		c.checkExpr(f.Value)
	}
}

func (c *Checker) checkCall(call *ast.Call) {
	for _, a := range call.Args {
		c.checkExpr(a)
	}
	proto := c.resolveCallee(call)
	if proto == nil {
		return
	}
	required := proto.RequiredParams()
	if proto.IsVariadic {
		if len(call.Args) < required {
			c.report(call, diag.CodeTypeArityMismatch,
				fmt.Sprintf("call to %q requires at least %d argument(s), got %d", proto.Name, required, len(call.Args)))
			return
		}
	} else if len(call.Args) != required {
		c.report(call, diag.CodeTypeArityMismatch,
			fmt.Sprintf("call to %q requires %d argument(s), got %d", proto.Name, required, len(call.Args)))
		return
	}
	for i := 0; i < required && i < len(call.Args); i++ {
		declared := proto.ParamTypes[i]
		argType := ast.TypeOf(call.Args[i])
		if !types.Equal(declared, argType) {
			c.typeMismatch(call, fmt.Sprintf("argument %d of %q", i+1, proto.Name), declared, argType)
			continue
		}
		if declared != nil && declared.Mutable && argType != nil && !argType.Mutable {
			c.report(call, diag.CodeTypeNotMutable,
				fmt.Sprintf("argument %d of %q requires a mutable value", i+1, proto.Name))
		}
	}
}

// resolveCallee resolves call's callee to a prototype: a free function
// (by name, across the import graph), a builtin, or — if the sugar
// rewrite has not yet run — a struct-qualified method name.
func (c *Checker) resolveCallee(call *ast.Call) *ast.Prototype {
	switch callee := call.Callee.(type) {
	case *ast.Variable:
		if fn := c.Resolver.ResolveFunction(c.Module, callee.Name); fn != nil {
			return fn.Proto
		}
		if p, ok := builtins.Lookup(callee.Name); ok {
			return p
		}
		c.unknownName(call, callee.Name)
		return nil
	case *ast.Builtin:
		if p, ok := builtins.Lookup(callee.Name); ok {
			return p
		}
		c.unknownName(call, callee.Name)
		return nil
	case *ast.Get:
		recvType := ast.TypeOf(callee.Receiver)
		if recvType == nil || recvType.Base != types.Ptr || recvType.Inner == nil {
			c.report(call, diag.CodeTypeUnknownName, "cannot resolve method call on non-pointer receiver")
			return nil
		}
		qualified := recvType.Inner.Payload + "." + callee.Key
		if fn := c.Resolver.ResolveFunction(c.Module, qualified); fn != nil {
			return fn.Proto
		}
		c.unknownName(call, qualified)
		return nil
	default:
		return nil
	}
}
