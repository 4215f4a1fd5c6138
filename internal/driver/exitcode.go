// Package driver implements the front end's end-to-end pipeline: read
// source, parse, resolve imports, resolve aliases and fill types,
// promote trailing expressions, rewrite method-call sugar, type-check,
// and (only when a codegen.Backend is registered) hand the resolved
// tree to it. cmd/lukac is a thin cobra wrapper around this package.
package driver

// ExitCode is the fixed, distinct exit-code taxonomy of spec §6/§7,
// numbered to match original_source/include/defs.h's LukaErrors enum
// (success through general/wrong-parameters/cant-open-file/
// cant-alloc-memory/lexer/parser/codegen/type-check/vector/io/llvm) so
// a script driving both implementations sees the same numbering.
type ExitCode int

const (
	ExitSuccess       ExitCode = 0
	ExitGeneralError  ExitCode = 1
	ExitWrongParams   ExitCode = 2
	ExitCantOpenFile  ExitCode = 3
	ExitCantAllocMem  ExitCode = 4
	ExitLexerFailed   ExitCode = 5
	ExitParserFailed  ExitCode = 6
	ExitCodegenError  ExitCode = 7
	ExitTypeCheckErr  ExitCode = 8
	ExitVectorFailure ExitCode = 9
	ExitIOError       ExitCode = 10
	ExitLLVMError     ExitCode = 11
)
