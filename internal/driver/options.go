package driver

import "github.com/luka-lang/lukac/internal/codegen"

// Options collects every flag cmd/lukac recognizes, per spec §6's CLI
// surface. Every field is filled from flags and their built-in
// defaults; no field is read from the environment or a .env file.
type Options struct {
	Input  string
	Output string

	Verbosity int
	OptLevel  string // "0".."3", matches codegen.OptimizeLevel's wire form

	EmitBitcode  bool
	CompileOnly  bool
	AssembleOnly bool
	NoLink       bool

	LogPath   string
	CachePath string // sqlite path for internal/modcache; ":memory:" by default

	// Backend is the code-generation collaborator. It is nil in this
	// build: spec §1 keeps a real LLVM-lowering backend out of scope,
	// so a build that actually requests output (-o/-c/-S/--emit-bitcode)
	// without one registered fails with ExitCodegenError rather than silently
	// skipping the step.
	Backend codegen.Backend
}

// NeedsCodegen reports whether o's flags require a registered backend.
func (o Options) NeedsCodegen() bool {
	return o.Output != "" || o.CompileOnly || o.AssembleOnly || o.EmitBitcode
}
