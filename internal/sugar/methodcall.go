// Package sugar implements the method-call syntactic rewrite of
// spec §4.8: `p.m(x)` becomes `S.m(p, x)` when p is a pointer to a
// known struct S, so the type checker and code generator only ever see
// free-function calls.
package sugar

import (
	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/types"
)

// Rewrite inspects call; if its callee is a Get-expression whose
// receiver is a variable of type `ptr struct S`, it rewrites the
// callee to the free function name `S.method` and prepends a fresh
// variable reference for the instance (same name, type, and
// mutability as the original receiver) to the argument list. Returns
// true if a rewrite happened.
//
// The rewrite is reversible: Unrewrite restores the original
// get-expression callee and the argument list without the prepended
// instance, given both from the caller, for a code generator that
// falls back to the unsugared form.
func Rewrite(call *ast.Call) bool {
	get, ok := call.Callee.(*ast.Get)
	if !ok || get.IsEnum {
		return false
	}
	receiver, ok := get.Receiver.(*ast.Variable)
	if !ok || receiver.Type == nil {
		return false
	}
	t := receiver.Type
	if t.Base != types.Ptr || t.Inner == nil || t.Inner.Base != types.Struct {
		return false
	}
	structName := t.Inner.Payload
	qualified := ast.NewVariable(structName+"."+get.Key, nil, false, get.Tok)
	instanceArg := ast.NewVariable(receiver.Name, receiver.Type.Duplicate(), receiver.Mutable, receiver.Tok)

	call.Callee = qualified
	call.Args = append([]ast.Expr{instanceArg}, call.Args...)
	return true
}

// Unrewrite restores call to its pre-Rewrite shape given the original
// callee and the original (un-prepended) argument list.
func Unrewrite(call *ast.Call, originalCallee ast.Callable, originalArgs []ast.Expr) {
	call.Callee = originalCallee
	call.Args = originalArgs
}
