package checker

import (
	"fmt"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/diag"
)

// CheckDeclarations validates module-level uniqueness constraints not
// covered by per-function body checking: no two functions, structs, or
// enums share a name, and no struct or enum repeats a field name.
func (c *Checker) CheckDeclarations() {
	seen := make(map[string]ast.Node)
	for _, fn := range c.Module.Functions {
		c.checkDuplicateName(seen, fn.Proto.Name, fn)
	}
	for _, s := range c.Module.Structs {
		c.checkDuplicateName(seen, s.Name, s)
		c.checkStructDef(s)
	}
	for _, e := range c.Module.Enums {
		c.checkDuplicateName(seen, e.Name, e)
		c.checkEnumDef(e)
	}
}

func (c *Checker) checkDuplicateName(seen map[string]ast.Node, name string, n ast.Node) {
	if _, ok := seen[name]; ok {
		c.report(n, diag.CodeTypeDuplicateName, fmt.Sprintf("duplicate top-level name %q", name))
		return
	}
	seen[name] = n
}

func (c *Checker) checkStructDef(s *ast.StructDef) {
	seenFields := make(map[string]bool)
	for _, f := range s.Fields {
		if seenFields[f.Name] {
			c.report(s, diag.CodeTypeDuplicateName,
				fmt.Sprintf("struct %q has duplicate field %q", s.Name, f.Name))
			continue
		}
		seenFields[f.Name] = true
	}
}

func (c *Checker) checkEnumDef(e *ast.EnumDef) {
	seenFields := make(map[string]bool)
	for _, f := range e.Fields {
		if seenFields[f.Name] {
			c.report(e, diag.CodeTypeDuplicateName,
				fmt.Sprintf("enum %q has duplicate constant %q", e.Name, f.Name))
			continue
		}
		seenFields[f.Name] = true
	}
}
