package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/builtins"
	"github.com/luka-lang/lukac/internal/checker"
	"github.com/luka-lang/lukac/internal/codegen"
	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/logger"
	"github.com/luka-lang/lukac/internal/modcache"
	"github.com/luka-lang/lukac/internal/module"
	"github.com/luka-lang/lukac/internal/parser"
	"github.com/luka-lang/lukac/internal/source"
	"github.com/luka-lang/lukac/internal/sugar"
)

// Result is what Run hands back to cmd/lukac once the whole pipeline
// (or the stage it got to) has finished.
type Result struct {
	Module    *module.Module
	Resolver  *module.Resolver
	Codegen   *codegen.Result
	Formatter *diag.Formatter
}

// Run executes the front-end pipeline against opts.Input: parse,
// resolve the import graph, resolve type aliases, fill inferred
// parameter/variable types, promote trailing expressions, rewrite
// method-call sugar, type-check, and — only if opts.Backend is
// non-nil — emit. On any stage's failure it returns a *Failure whose
// Code is the exit code cmd/lukac should return.
func Run(ctx context.Context, opts Options, log *logger.Logger) (*Result, error) {
	builtins.Init()
	defer builtins.Shutdown()

	cache, err := openCache(opts.CachePath)
	if err != nil {
		return nil, fail(ExitIOError, diag.Diagnostic{
			Stage: diag.StageResource, Severity: diag.SeverityError,
			Message: fmt.Sprintf("opening module cache: %v", err),
		})
	}
	if cache != nil {
		defer cache.Close()
	}

	resolver := module.NewResolver()
	mod, ferr := resolveModuleGraph(opts.Input, resolver, cache, log)
	if ferr != nil {
		return nil, ferr
	}

	if ferr := resolveAndPromote(mod); ferr != nil {
		return nil, ferr
	}
	rewriteMethodSugar(mod)

	c := checker.New(mod, resolver)
	c.CheckDeclarations()
	c.CheckModule()
	if !c.OK() {
		return nil, fail(ExitTypeCheckErr, c.Diagnostics()[0])
	}

	result := &Result{Module: mod, Resolver: resolver, Formatter: diag.NewFormatter()}

	if !opts.NeedsCodegen() {
		return result, nil
	}
	if opts.Backend == nil {
		return nil, fail(ExitCodegenError, diag.Diagnostic{
			Stage: diag.StageCodegen, Severity: diag.SeverityError,
			Message: "no code generation backend registered for this build",
		})
	}

	data, err := opts.Backend.EmitModule(mod, resolver)
	if err != nil {
		return nil, fail(ExitCodegenError, diag.Diagnostic{
			Stage: diag.StageCodegen, Severity: diag.SeverityError,
			Message: fmt.Sprintf("code generation: %v", err),
		})
	}
	result.Codegen = &codegen.Result{Format: "llvm-ir", Data: data}

	if err := assembleIfRequested(ctx, opts, result.Codegen, log); err != nil {
		return nil, fail(ExitLLVMError, diag.Diagnostic{
			Stage: diag.StageCodegen, Severity: diag.SeverityError,
			Message: err.Error(),
		})
	}

	return result, nil
}

func openCache(path string) (*modcache.Cache, error) {
	if path == "" {
		path = ":memory:"
	}
	return modcache.Open(path)
}

// resolveModuleGraph parses path and every file it (transitively)
// imports, registering each into resolver keyed on canonical path
// before following its own imports — so a cycle's far side finds the
// (still-being-populated) module already registered instead of
// recursing forever, and a diamond import is parsed once. cache only
// records whether an import's content hash matches a prior
// invocation's — it is consulted for an informational log line, never
// to skip re-parsing, since incremental recompilation across
// invocations is out of scope; the front end always re-derives the
// full tree it type-checks against.
func resolveModuleGraph(path string, resolver *module.Resolver, cache *modcache.Cache, log *logger.Logger) (*module.Module, *Failure) {
	canonical, err := source.CanonicalPath(path)
	if err != nil {
		return nil, fail(ExitCantOpenFile, diag.Diagnostic{
			Stage: diag.StageInput, Severity: diag.SeverityError,
			Message: fmt.Sprintf("resolving %s: %v", path, err),
		})
	}
	if existing, ok := resolver.Modules[canonical]; ok {
		return existing, nil
	}

	content, err := source.Read(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fail(ExitCantOpenFile, diag.Diagnostic{
				Stage: diag.StageInput, Severity: diag.SeverityError,
				Message: fmt.Sprintf("cannot open %s", canonical),
			})
		}
		return nil, fail(ExitIOError, diag.Diagnostic{
			Stage: diag.StageInput, Severity: diag.SeverityError,
			Message: err.Error(),
		})
	}

	if cache != nil && log != nil {
		hash := modcache.ContentHash([]byte(content))
		var prior struct{}
		if hit, err := cache.Lookup(canonical, hash, &prior); err == nil && hit {
			log.Debug("module %s unchanged since last recorded build", canonical)
		}
	}

	mod, err := parser.ParseFile(content, canonical)
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			return nil, fail(ExitParserFailed, perr.Diagnostic)
		}
		return nil, fail(ExitParserFailed, diag.Diagnostic{
			Stage: diag.StageParse, Severity: diag.SeverityError, Message: err.Error(),
		})
	}
	resolver.Register(mod)

	dir := filepath.Dir(canonical)
	for _, raw := range mod.ImportPaths {
		importPath, err := source.ResolveImport(dir, raw)
		if err != nil {
			return nil, fail(ExitCantOpenFile, diag.Diagnostic{
				Stage: diag.StageInput, Severity: diag.SeverityError, Message: err.Error(),
			})
		}
		imp, ferr := resolveModuleGraph(importPath, resolver, cache, log)
		if ferr != nil {
			return nil, ferr
		}
		mod.Imports = append(mod.Imports, imp)
	}

	if cache != nil {
		hash := modcache.ContentHash([]byte(content))
		_ = cache.Store(canonical, hash, struct{}{})
	}

	return mod, nil
}

// resolveAndPromote runs the alias-resolution, type-fill, and
// last-expression-promotion passes spec.md describes as semantic
// passes ahead of checking, for every function the module owns
// directly (imported modules are resolved independently by their own
// owning invocation).
func resolveAndPromote(mod *module.Module) *Failure {
	aliases := mod.AliasTable()
	for _, fn := range mod.Functions {
		if fn.IsExtern() {
			continue
		}
		if err := ast.ResolveAliasesInFunction(fn, aliases); err != nil {
			if uerr, ok := err.(*ast.UnknownAliasError); ok {
				d := diag.Diagnostic{
					Stage: diag.StageType, Severity: diag.SeverityError,
					Code: diag.CodeTypeUnknownAlias, Message: uerr.Error(),
				}
				if uerr.Suggestion != "" {
					d = d.WithHelp(fmt.Sprintf("did you mean %q?", uerr.Suggestion))
				}
				return fail(ExitTypeCheckErr, d)
			}
			return fail(ExitTypeCheckErr, diag.Diagnostic{
				Stage: diag.StageType, Severity: diag.SeverityError, Message: err.Error(),
			})
		}
		ast.FillParamTypes(fn)
		ast.FillVariableTypes(fn)
		ast.PromoteFunction(fn)
	}
	return nil
}

// rewriteMethodSugar applies sugar.Rewrite to every call expression
// reachable from a function body, per spec §4.8.
func rewriteMethodSugar(mod *module.Module) {
	for _, fn := range mod.Functions {
		walkCalls(fn.Body, sugar.Rewrite)
	}
}

func walkCalls(body []ast.Stmt, f func(*ast.Call) bool) {
	for _, s := range body {
		walkCallsInStmt(s, f)
	}
}

func walkCallsInStmt(s ast.Stmt, f func(*ast.Call) bool) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		walkCallsInExpr(n.X, f)
	case *ast.Let:
		walkCallsInExpr(n.Init, f)
	case *ast.Return:
		walkCallsInExpr(n.Value, f)
	case *ast.If:
		walkCallsInExpr(n.Cond, f)
		walkCalls(n.Then, f)
		walkCalls(n.Else, f)
	case *ast.While:
		walkCallsInExpr(n.Cond, f)
		walkCalls(n.Body, f)
	}
}

func walkCallsInExpr(e ast.Expr, f func(*ast.Call) bool) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.Call:
		for _, a := range n.Args {
			walkCallsInExpr(a, f)
		}
		f(n)
	case *ast.Binary:
		walkCallsInExpr(n.Left, f)
		walkCallsInExpr(n.Right, f)
	case *ast.Unary:
		walkCallsInExpr(n.Operand, f)
	case *ast.Cast:
		walkCallsInExpr(n.Operand, f)
	case *ast.Assignment:
		walkCallsInExpr(n.LHS, f)
		walkCallsInExpr(n.RHS, f)
	case *ast.Get:
		walkCallsInExpr(n.Receiver, f)
	case *ast.ArrayDeref:
		walkCallsInExpr(n.Indexable, f)
		walkCallsInExpr(n.Index, f)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			walkCallsInExpr(el, f)
		}
	case *ast.If:
		walkCallsInExpr(n.Cond, f)
		walkCalls(n.Then, f)
		walkCalls(n.Else, f)
	case *ast.While:
		walkCallsInExpr(n.Cond, f)
		walkCalls(n.Body, f)
	}
}
