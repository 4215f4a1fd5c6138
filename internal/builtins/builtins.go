// Package builtins is the process-lifetime registry of compiler
// intrinsic prototypes. Initialization must complete before parsing
// resolves a call whose callee is a builtin identifier; the table is
// immutable once built and lookup is a name match.
package builtins

import (
	"fmt"
	"sync"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/types"
)

// NameSizeOf is the sole builtin's identifier, per the reference
// implementation's single-entry intrinsic table: no additional
// builtins are invented.
const NameSizeOf = "@sizeOf"

var (
	once     sync.Once
	registry map[string]*ast.Prototype
)

// Init builds the registry. Safe to call more than once; only the
// first call has effect.
func Init() {
	once.Do(func() {
		registry = map[string]*ast.Prototype{
			NameSizeOf: ast.NewPrototype(
				NameSizeOf,
				[]string{"type"},
				[]*types.Type{types.New(types.Any)},
				types.New(types.U64),
				false,
				nil,
			),
		}
	})
}

// Lookup returns the builtin prototype named name, or (nil, false) if
// no such builtin exists. Init must have been called first.
func Lookup(name string) (*ast.Prototype, bool) {
	if registry == nil {
		panic(fmt.Sprintf("builtins: Lookup(%q) called before Init", name))
	}
	p, ok := registry[name]
	return p, ok
}

// IsBuiltin reports whether name identifies a known builtin.
func IsBuiltin(name string) bool {
	if registry == nil {
		return false
	}
	_, ok := registry[name]
	return ok
}

// Shutdown releases the registry; per spec §4.5 this is the registry's
// own responsibility at process exit.
func Shutdown() {
	registry = nil
	once = sync.Once{}
}
