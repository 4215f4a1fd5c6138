package driver

import "github.com/luka-lang/lukac/internal/diag"

// Failure pairs a diagnostic with the exit code the CLI should return
// for it, letting every pipeline stage report through the same shape.
type Failure struct {
	Code        ExitCode
	Diagnostics []diag.Diagnostic
}

func (f *Failure) Error() string {
	if len(f.Diagnostics) == 0 {
		return "driver: failed"
	}
	return f.Diagnostics[0].Error()
}

func fail(code ExitCode, d diag.Diagnostic) *Failure {
	return &Failure{Code: code, Diagnostics: []diag.Diagnostic{d}}
}

func failAll(code ExitCode, ds []diag.Diagnostic) *Failure {
	return &Failure{Code: code, Diagnostics: ds}
}
