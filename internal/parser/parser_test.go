package parser_test

import (
	"testing"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/parser"
	"github.com/luka-lang/lukac/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Function {
	t.Helper()
	mod, err := parser.ParseFile(src, "t.luka")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(mod.Functions) != 1 {
		t.Fatalf("expected exactly one function, got %d", len(mod.Functions))
	}
	return mod.Functions[0]
}

func TestParseSimpleFunction(t *testing.T) {
	fn := mustParse(t, `fn add(x: s32, y: s32): s32 { return x + y; }`)
	if fn.Proto.Name != "add" {
		t.Fatalf("expected name add, got %s", fn.Proto.Name)
	}
	if len(fn.Proto.ParamNames) != 2 || fn.Proto.ParamNames[0] != "x" || fn.Proto.ParamNames[1] != "y" {
		t.Fatalf("unexpected param names %v", fn.Proto.ParamNames)
	}
	if !types.Equal(fn.Proto.ReturnType, types.New(types.S32)) {
		t.Fatalf("expected return type s32, got %v", fn.Proto.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected one body statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected a return statement, got %T", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected x + y binary, got %#v", ret.Value)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	fn := mustParse(t, `fn f(): s32 { return 1 + 2 * 3; }`)
	ret := fn.Body[0].(*ast.Return)
	bin := ret.Value.(*ast.Binary)
	if bin.Op != ast.BinAdd {
		t.Fatalf("expected top-level add, got %v", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.BinMul {
		t.Fatalf("expected right side to be a multiplication, got %#v", bin.Right)
	}
}

func TestLetWithMutAndCast(t *testing.T) {
	fn := mustParse(t, `fn f() { let mut x: s64 = 1 as s64; }`)
	letStmt, ok := fn.Body[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected a let statement, got %T", fn.Body[0])
	}
	if !letStmt.Var.Mutable {
		t.Fatalf("expected mut to be set")
	}
	cast, ok := letStmt.Init.(*ast.Cast)
	if !ok {
		t.Fatalf("expected a cast initializer, got %#v", letStmt.Init)
	}
	if !types.Equal(cast.Type, types.New(types.S64)) {
		t.Fatalf("expected cast to s64, got %v", cast.Type)
	}
}

func TestIfAsTrailingExpressionStatementHasOptionalSemicolon(t *testing.T) {
	fn := mustParse(t, `fn f(): s32 { if true { 1; } else { 2; } }`)
	if len(fn.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.ExprStmt); !ok {
		t.Fatalf("expected an expr-stmt wrapping the if, got %T", fn.Body[0])
	}
}

func TestWhileLoopWithBreak(t *testing.T) {
	fn := mustParse(t, `fn f() { while true { break; } }`)
	stmt := fn.Body[0].(*ast.ExprStmt)
	while, ok := stmt.X.(*ast.While)
	if !ok {
		t.Fatalf("expected a while expression, got %#v", stmt.X)
	}
	if _, ok := while.Body[0].(*ast.Break); !ok {
		t.Fatalf("expected break inside while body, got %T", while.Body[0])
	}
}

func TestStructValueLiteralDisambiguation(t *testing.T) {
	src := `
struct Point { x: s32, y: s32 }
fn f(): Point { return Point { x: 1, y: 2 }; }
`
	mod, err := parser.ParseFile(src, "t.luka")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(mod.Structs) != 1 || mod.Structs[0].Name != "Point" {
		t.Fatalf("expected struct Point, got %v", mod.Structs)
	}
	fn := mod.Functions[0]
	ret := fn.Body[0].(*ast.Return)
	sv, ok := ret.Value.(*ast.StructValue)
	if !ok || sv.StructName != "Point" || len(sv.Fields) != 2 {
		t.Fatalf("expected a Point struct literal, got %#v", ret.Value)
	}
}

func TestEnumGetAndAutoIncrement(t *testing.T) {
	src := `
enum Color { Red, Green = 5, Blue }
fn f(): s32 { return Color::Blue; }
`
	mod, err := parser.ParseFile(src, "t.luka")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	enum := mod.Enums[0]
	if enum.Fields[0].Value.Value.S64 != 0 || enum.Fields[1].Value.Value.S64 != 5 || enum.Fields[2].Value.Value.S64 != 6 {
		t.Fatalf("unexpected auto-increment values: %+v", enum.Fields)
	}
	fn := mod.Functions[0]
	ret := fn.Body[0].(*ast.Return)
	get, ok := ret.Value.(*ast.Get)
	if !ok || !get.IsEnum || get.Key != "Blue" {
		t.Fatalf("expected Color::Blue get, got %#v", ret.Value)
	}
}

func TestVariadicExternPrototype(t *testing.T) {
	mod, err := parser.ParseFile(`extern printf(fmt: u8*, args: any...): s32;`, "t.luka")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := mod.Functions[0]
	if !fn.Proto.IsVariadic {
		t.Fatalf("expected printf to be variadic")
	}
	if !fn.IsExtern() {
		t.Fatalf("expected printf to be extern (no body)")
	}
	if !types.Equal(fn.Proto.ParamTypes[1], types.New(types.Any)) {
		t.Fatalf("expected trailing variadic param type any, got %v", fn.Proto.ParamTypes[1])
	}
}

func TestMethodCallSugarParsesAsGetThenCall(t *testing.T) {
	src := `
struct Point { x: s32, y: s32 }
fn f(p: Point): s32 { return p.magnitude(1); }
`
	mod, err := parser.ParseFile(src, "t.luka")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := mod.Functions[0]
	ret := fn.Body[0].(*ast.Return)
	call, ok := ret.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected a call, got %#v", ret.Value)
	}
	get, ok := call.Callee.(*ast.Get)
	if !ok || get.Key != "magnitude" || get.IsEnum {
		t.Fatalf("expected p.magnitude as callee, got %#v", call.Callee)
	}
}

func TestSizeOfBuiltin(t *testing.T) {
	fn := mustParse(t, `fn f(): u64 { return sizeOf(s32); }`)
	ret := fn.Body[0].(*ast.Return)
	sz, ok := ret.Value.(*ast.SizeOf)
	if !ok {
		t.Fatalf("expected a SizeOf node, got %#v", ret.Value)
	}
	if !types.Equal(sz.Arg.Type, types.New(types.S32)) {
		t.Fatalf("expected sizeOf argument s32, got %v", sz.Arg.Type)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, err := parser.ParseFile(`fn f() { let x = "oops; }`, "t.luka")
	if err == nil {
		t.Fatalf("expected a fatal parse error for an unterminated string")
	}
}

func TestMissingSemicolonIsFatal(t *testing.T) {
	_, err := parser.ParseFile(`fn f() { let x: s32 = 1 }`, "t.luka")
	if err == nil {
		t.Fatalf("expected a fatal parse error for a missing semicolon")
	}
}

func TestAssignmentToNonTargetIsFatal(t *testing.T) {
	_, err := parser.ParseFile(`fn f() { 1 = 2; }`, "t.luka")
	if err == nil {
		t.Fatalf("expected a fatal parse error for an invalid assignment target")
	}
}
