// Package checker implements Luka's type checker: per-function
// recursive-descent validation of call arity/types/mutability,
// assignment compatibility, binary-operand agreement, let-binding
// consistency, and get-expression kind agreement (enum vs struct).
package checker

import (
	"fmt"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/builtins"
	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/module"
	"github.com/luka-lang/lukac/internal/types"
	"github.com/xrash/smetrics"
)

// Checker validates one module's functions against the resolver's
// cross-module symbol graph.
type Checker struct {
	Module   *module.Module
	Resolver *module.Resolver

	diagnostics []diag.Diagnostic
}

// New creates a checker for mod, resolving cross-module references
// through r.
func New(mod *module.Module, r *module.Resolver) *Checker {
	return &Checker{Module: mod, Resolver: r}
}

// Diagnostics returns every error accumulated by CheckFunction,
// CheckModule, and CheckDeclarations calls so far.
func (c *Checker) Diagnostics() []diag.Diagnostic { return c.diagnostics }

// OK reports whether no errors have been recorded.
func (c *Checker) OK() bool { return len(c.diagnostics) == 0 }

func toDiagSpan(n ast.Node) diag.Span {
	s := n.Span()
	return diag.Span{Filename: s.FilePath, Line: s.Line, Offset: s.Offset, Start: s.Start, End: s.End}
}

func (c *Checker) report(tok ast.Node, code diag.Code, message string) {
	d := diag.Diagnostic{
		Stage:    diag.StageType,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  message,
		Span:     toDiagSpan(tok),
	}
	c.diagnostics = append(c.diagnostics, d)
}

func (c *Checker) reportHelp(tok ast.Node, code diag.Code, message, help string) {
	d := diag.Diagnostic{
		Stage:    diag.StageType,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  message,
		Span:     toDiagSpan(tok),
		Help:     help,
	}
	c.diagnostics = append(c.diagnostics, d)
}

// CheckFunction checks fn statement by statement per spec §4.7.
func (c *Checker) CheckFunction(fn *ast.Function) {
	for _, s := range fn.Body {
		c.checkStmt(s)
	}
}

// CheckModule checks every function owned directly by the module
// (imported modules are checked independently, once each, by their own
// owning compilation).
func (c *Checker) CheckModule() {
	for _, fn := range c.Module.Functions {
		if fn.IsExtern() {
			continue
		}
		c.CheckFunction(fn)
	}
}

func (c *Checker) typeMismatch(tok ast.Node, rule string, want, got *types.Type) {
	c.report(tok, diag.CodeTypeMismatch,
		fmt.Sprintf("%s: expected %s, got %s", rule, want.String(), got.String()))
}

// suggestName returns the closest candidate to name by Jaro-Winkler
// similarity, for a "did you mean" hint, or "" if candidates is empty
// or no candidate scores at least 0.5.
func suggestName(name string, candidates []string) string {
	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		score := smetrics.JaroWinkler(name, cand, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	if bestScore < 0.5 {
		return ""
	}
	return best
}

func (c *Checker) knownNames() []string {
	var names []string
	for _, fn := range c.Module.Functions {
		names = append(names, fn.Proto.Name)
	}
	for name := range c.Module.AliasTable() {
		names = append(names, name)
	}
	return names
}

func (c *Checker) unknownName(tok ast.Node, name string) {
	help := ""
	if s := suggestName(name, c.knownNames()); s != "" {
		help = fmt.Sprintf("did you mean %q?", s)
	}
	if builtins.IsBuiltin(name) {
		return
	}
	c.reportHelp(tok, diag.CodeTypeUnknownName, fmt.Sprintf("unknown name %q", name), help)
}
