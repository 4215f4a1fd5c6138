package checker_test

import (
	"testing"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/builtins"
	"github.com/luka-lang/lukac/internal/checker"
	"github.com/luka-lang/lukac/internal/module"
	"github.com/luka-lang/lukac/internal/types"
)

func init() {
	builtins.Init()
}

func newResolverWith(mod *module.Module) *module.Resolver {
	r := module.NewResolver()
	r.Register(mod)
	return r
}

// fn id(x: s32): s32 { x }
func TestCheckAcceptsIdentityFunction(t *testing.T) {
	proto := ast.NewPrototype("id", []string{"x"}, []*types.Type{types.New(types.S32)}, types.New(types.S32), false, nil)
	xRef := ast.NewVariable("x", types.New(types.S32), false, nil)
	fn := ast.NewFunction(proto, []ast.Stmt{ast.NewExprStmt(xRef, nil)}, nil)

	mod := module.New("id.luka")
	mod.Functions = append(mod.Functions, fn)

	c := checker.New(mod, newResolverWith(mod))
	c.CheckFunction(fn)

	if !c.OK() {
		t.Fatalf("expected no diagnostics, got %v", c.Diagnostics())
	}
}

// let x: s32 = "hi"; -- type mismatch (ptr u8 vs s32)
func TestCheckRejectsLetTypeMismatch(t *testing.T) {
	strLit := ast.NewStringLit("hi", nil)
	letStmt := ast.NewLet(ast.NewVariable("x", types.New(types.S32), false, nil), strLit, false, nil)
	fn := ast.NewFunction(
		ast.NewPrototype("f", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{letStmt},
		nil,
	)
	mod := module.New("t.luka")
	c := checker.New(mod, newResolverWith(mod))
	c.CheckFunction(fn)

	if c.OK() {
		t.Fatalf("expected a type-mismatch diagnostic")
	}
}

// x = 5; where x is not mutable -- rejected
func TestCheckRejectsAssignToImmutable(t *testing.T) {
	xVar := ast.NewVariable("x", types.New(types.S32), false, nil)
	five := ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: 5}, nil)
	assign := ast.NewAssignment(xVar, five, nil)
	fn := ast.NewFunction(
		ast.NewPrototype("f", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{ast.NewExprStmt(assign, nil)},
		nil,
	)
	mod := module.New("t.luka")
	c := checker.New(mod, newResolverWith(mod))
	c.CheckFunction(fn)

	if c.OK() {
		t.Fatalf("expected an immutability diagnostic")
	}
}

// x = 5; where x is mutable -- accepted
func TestCheckAcceptsAssignToMutable(t *testing.T) {
	mutType := types.New(types.S32).WithMutable(true)
	xVar := ast.NewVariable("x", mutType, true, nil)
	five := ast.NewNumber(types.New(types.S32).WithMutable(true), ast.NumberValue{S64: 5}, nil)
	assign := ast.NewAssignment(xVar, five, nil)
	fn := ast.NewFunction(
		ast.NewPrototype("f", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{ast.NewExprStmt(assign, nil)},
		nil,
	)
	mod := module.New("t.luka")
	c := checker.New(mod, newResolverWith(mod))
	c.CheckFunction(fn)

	if !c.OK() {
		t.Fatalf("expected no diagnostics, got %v", c.Diagnostics())
	}
}

// call arity: variadic requires at least required_params args
func TestCheckVariadicArity(t *testing.T) {
	proto := ast.NewPrototype("printf", []string{"fmt", "args"},
		[]*types.Type{types.NewPtr(types.New(types.U8)), types.New(types.Any)},
		types.New(types.S32), true, nil)
	fn := ast.NewFunction(proto, nil, nil)

	mod := module.New("t.luka")
	mod.Functions = append(mod.Functions, fn)
	r := newResolverWith(mod)

	fmtArg := ast.NewStringLit("hi", nil)
	okCall := ast.NewCall(ast.NewVariable("printf", nil, false, nil), []ast.Expr{fmtArg}, nil)
	c1 := checker.New(mod, r)
	c1.CheckFunction(ast.NewFunction(ast.NewPrototype("caller1", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{ast.NewExprStmt(okCall, nil)}, nil))
	if !c1.OK() {
		t.Fatalf("expected variadic call with exactly required args to pass, got %v", c1.Diagnostics())
	}

	badCall := ast.NewCall(ast.NewVariable("printf", nil, false, nil), nil, nil)
	c2 := checker.New(mod, r)
	c2.CheckFunction(ast.NewFunction(ast.NewPrototype("caller2", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{ast.NewExprStmt(badCall, nil)}, nil))
	if c2.OK() {
		t.Fatalf("expected call missing the required fmt argument to fail")
	}
}

// Get-expression kind mismatch: struct receiver, IsEnum true
func TestCheckGetKindMismatch(t *testing.T) {
	structType := types.NewNamed(types.Struct, "Point")
	recv := ast.NewVariable("p", structType, false, nil)
	get := ast.NewGet(recv, "Red", true, nil)
	fn := ast.NewFunction(
		ast.NewPrototype("f", nil, nil, types.New(types.Void), false, nil),
		[]ast.Stmt{ast.NewExprStmt(get, nil)},
		nil,
	)
	mod := module.New("t.luka")
	c := checker.New(mod, newResolverWith(mod))
	c.CheckFunction(fn)

	if c.OK() {
		t.Fatalf("expected a kind-mismatch diagnostic for enum get on a struct receiver")
	}
}
