// Package module implements Luka's per-file Module record and the
// cross-module function resolver: a process-level table of parsed
// modules keyed on canonical file path, with weak (non-owning) links
// from an importer to its imports.
package module

import (
	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/types"
)

// TypeAlias is a single name/type binding from a `type` declaration.
type TypeAlias struct {
	Name string
	Type *types.Type
}

// Module owns one file's top-level items. ImportPaths are the raw
// import strings as written in source; Imports are resolved, weak
// links into the process-level table populated by a Resolver — a
// Module never owns the Modules it imports.
type Module struct {
	FilePath    string
	Enums       []*ast.EnumDef
	Functions   []*ast.Function
	Structs     []*ast.StructDef
	Variables   []*ast.Let
	Aliases     []TypeAlias
	ImportPaths []string
	Imports     []*Module
}

// New creates an empty module for filePath.
func New(filePath string) *Module {
	return &Module{FilePath: filePath}
}

// FindFunction searches m's own functions by name, returning nil on miss.
func (m *Module) FindFunction(name string) *ast.Function {
	for _, fn := range m.Functions {
		if fn.Proto.Name == name {
			return fn
		}
	}
	return nil
}

// FindStruct searches m's own struct definitions by name.
func (m *Module) FindStruct(name string) *ast.StructDef {
	for _, s := range m.Structs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindEnum searches m's own enum definitions by name.
func (m *Module) FindEnum(name string) *ast.EnumDef {
	for _, e := range m.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// AliasTable builds an ast.AliasTable from m's own type aliases (not
// recursing into imports, matching the per-compilation alias scope).
func (m *Module) AliasTable() ast.AliasTable {
	table := make(ast.AliasTable, len(m.Aliases))
	for _, a := range m.Aliases {
		table[a.Name] = a.Type
	}
	return table
}

// Resolver resolves function references across the module import
// graph, owning the process-level table keyed on canonical file path
// that every parsed Module is registered into.
type Resolver struct {
	Modules map[string]*Module
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{Modules: make(map[string]*Module)}
}

// Register adds m to the process-level table, keyed on its canonical
// file path. Re-registering the same path replaces the prior entry.
func (r *Resolver) Register(m *Module) {
	r.Modules[m.FilePath] = m
}

// ResolveFunction searches module's own functions first; on miss it
// recursively searches imported modules, skipping any module whose
// file path has already been visited in this traversal to break import
// cycles. Returns nil if no function named name is reachable.
func (r *Resolver) ResolveFunction(mod *Module, name string) *ast.Function {
	return r.resolveFunction(mod, name, make(map[string]bool))
}

func (r *Resolver) resolveFunction(mod *Module, name string, visited map[string]bool) *ast.Function {
	if mod == nil || visited[mod.FilePath] {
		return nil
	}
	visited[mod.FilePath] = true
	if fn := mod.FindFunction(name); fn != nil {
		return fn
	}
	for _, imp := range mod.Imports {
		if fn := r.resolveFunction(imp, name, visited); fn != nil {
			return fn
		}
	}
	return nil
}

// ResolveStruct mirrors ResolveFunction for struct definitions, needed
// to type-check nominal struct literals and field accesses that cross
// an import boundary.
func (r *Resolver) ResolveStruct(mod *Module, name string) *ast.StructDef {
	return r.resolveStruct(mod, name, make(map[string]bool))
}

func (r *Resolver) resolveStruct(mod *Module, name string, visited map[string]bool) *ast.StructDef {
	if mod == nil || visited[mod.FilePath] {
		return nil
	}
	visited[mod.FilePath] = true
	if s := mod.FindStruct(name); s != nil {
		return s
	}
	for _, imp := range mod.Imports {
		if s := r.resolveStruct(imp, name, visited); s != nil {
			return s
		}
	}
	return nil
}

// ResolveEnum mirrors ResolveFunction for enum definitions.
func (r *Resolver) ResolveEnum(mod *Module, name string) *ast.EnumDef {
	return r.resolveEnum(mod, name, make(map[string]bool))
}

func (r *Resolver) resolveEnum(mod *Module, name string, visited map[string]bool) *ast.EnumDef {
	if mod == nil || visited[mod.FilePath] {
		return nil
	}
	visited[mod.FilePath] = true
	if e := mod.FindEnum(name); e != nil {
		return e
	}
	for _, imp := range mod.Imports {
		if e := r.resolveEnum(imp, name, visited); e != nil {
			return e
		}
	}
	return nil
}
