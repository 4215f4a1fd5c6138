package ast_test

import (
	"testing"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/types"
)

func TestTypeOfRules(t *testing.T) {
	num := ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: 1}, nil)
	if !types.Equal(ast.TypeOf(num), types.New(types.S32)) {
		t.Fatalf("expected TypeOf(Number) to be its carried type")
	}

	str := ast.NewStringLit("hi", nil)
	if !types.Equal(ast.TypeOf(str), types.NewPtr(types.New(types.U8))) {
		t.Fatalf("expected TypeOf(StringLit) to be ptr u8, got %v", ast.TypeOf(str))
	}

	lit := ast.NewLiteral(ast.LitTrue, nil)
	if !types.Equal(ast.TypeOf(lit), types.New(types.Any)) {
		t.Fatalf("expected TypeOf(Literal) to be any, got %v", ast.TypeOf(lit))
	}
}

func TestPromoteLastExprUnwrapsTrailingIf(t *testing.T) {
	inner := ast.NewIf(ast.NewLiteral(ast.LitTrue, nil),
		[]ast.Stmt{ast.NewExprStmt(ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: 1}, nil), nil)},
		nil, nil)
	body := []ast.Stmt{ast.NewExprStmt(inner, nil)}

	promoted := ast.PromoteLastExpr(body)
	if len(promoted) != 1 {
		t.Fatalf("expected one statement after promotion, got %d", len(promoted))
	}
	if _, ok := promoted[0].(*ast.If); !ok {
		t.Fatalf("expected the trailing if to be unwrapped from its expr-stmt, got %T", promoted[0])
	}
}

func TestPromoteLastExprLeavesNonCompoundTailAlone(t *testing.T) {
	body := []ast.Stmt{ast.NewExprStmt(ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: 1}, nil), nil)}
	promoted := ast.PromoteLastExpr(body)
	if _, ok := promoted[0].(*ast.ExprStmt); !ok {
		t.Fatalf("expected a plain number tail to stay wrapped, got %T", promoted[0])
	}
}

func TestResolveTypeReplacesAlias(t *testing.T) {
	aliases := ast.AliasTable{"MyInt": types.New(types.S32)}
	resolved, err := ast.ResolveType(types.NewAlias("MyInt"), aliases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(resolved, types.New(types.S32)) {
		t.Fatalf("expected resolved alias to equal s32, got %v", resolved)
	}
}

func TestResolveTypeRecursesThroughPointerChain(t *testing.T) {
	aliases := ast.AliasTable{"MyInt": types.New(types.S32)}
	resolved, err := ast.ResolveType(types.NewPtr(types.NewAlias("MyInt")), aliases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Base != types.Ptr || !types.Equal(resolved.Inner, types.New(types.S32)) {
		t.Fatalf("expected ptr s32, got %v", resolved)
	}
}

func TestResolveTypeUnknownAliasIsFatalWithSuggestion(t *testing.T) {
	aliases := ast.AliasTable{"MyInt": types.New(types.S32)}
	_, err := ast.ResolveType(types.NewAlias("MyInnt"), aliases)
	if err == nil {
		t.Fatalf("expected an unknown-alias error")
	}
	unknown, ok := err.(*ast.UnknownAliasError)
	if !ok {
		t.Fatalf("expected *UnknownAliasError, got %T", err)
	}
	if unknown.Suggestion != "MyInt" {
		t.Fatalf("expected suggestion MyInt, got %q", unknown.Suggestion)
	}
}

func TestBuildEnumDefAutoIncrement(t *testing.T) {
	raw := []ast.RawEnumField{
		{Name: "Red"},
		{Name: "Green", Init: ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: 10}, nil)},
		{Name: "Blue"},
	}
	def := ast.BuildEnumDef("Color", raw, nil)
	got := []int64{def.Fields[0].Value.Value.S64, def.Fields[1].Value.Value.S64, def.Fields[2].Value.Value.S64}
	want := []int64{0, 10, 11}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}
