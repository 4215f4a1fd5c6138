// Package codegen pins down the narrow contract a code-generation
// back end must satisfy against the resolved tree — the back end
// itself (lowering into an external IR builder API) is out of scope
// per spec §1; only its interface boundary and the external
// IR/assembler/linker toolchain glue live here.
package codegen

import (
	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/module"
)

// Backend lowers a fully resolved and type-checked module into
// executable code. A real backend lowers into an external IR
// library's builder API (e.g. LLVM); this package only pins the
// contract the front end hands to one.
type Backend interface {
	// EmitModule lowers every function, struct, and enum definition
	// owned directly by mod (imports have already been lowered, or are
	// assumed available as external declarations) into the backend's
	// native unit of output, returning its serialized form.
	EmitModule(mod *module.Module, resolver *module.Resolver) ([]byte, error)

	// EmitFunction lowers a single function in isolation. The driver
	// itself only calls EmitModule.
	EmitFunction(fn *ast.Function, mod *module.Module, resolver *module.Resolver) ([]byte, error)
}

// Result is what a driver receives back from a Backend invocation: the
// raw emitted unit plus the format it is in (e.g. "llvm-ir", "llvm-bc").
type Result struct {
	Format string
	Data   []byte
}
