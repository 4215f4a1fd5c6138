package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic, one
// entry per kind in the error taxonomy of the front end.
type Stage string

const (
	StageInput    Stage = "input"
	StageResource Stage = "resource"
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageType     Stage = "type"
	StageCodegen  Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeInputNotFound   Code = "INPUT_NOT_FOUND"
	CodeInputBadArgs    Code = "INPUT_BAD_ARGS"
	CodeResourceExhaust Code = "RESOURCE_EXHAUSTED"

	CodeLexUnterminatedString Code = "LEX_UNTERMINATED_STRING"
	CodeLexInvalidEscape      Code = "LEX_INVALID_ESCAPE"
	CodeLexMalformedFloat     Code = "LEX_MALFORMED_FLOAT"
	CodeLexIllegalRune        Code = "LEX_ILLEGAL_RUNE"

	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseBadAssignTarget Code = "PARSE_BAD_ASSIGN_TARGET"
	CodeParseUnknownType     Code = "PARSE_UNKNOWN_TYPE"

	CodeTypeUnknownName     Code = "TYPE_UNKNOWN_NAME"
	CodeTypeKindMismatch    Code = "TYPE_KIND_MISMATCH"
	CodeTypeArityMismatch   Code = "TYPE_ARITY_MISMATCH"
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeTypeNotMutable      Code = "TYPE_NOT_MUTABLE"
	CodeTypeUnknownAlias    Code = "TYPE_UNKNOWN_ALIAS"
	CodeTypeDuplicateName   Code = "TYPE_DUPLICATE_NAME"
	CodeTypeBadAssignTarget Code = "TYPE_BAD_ASSIGN_TARGET"
	CodeCodegenExternal     Code = "CODEGEN_EXTERNAL"
)

// Span represents a location in source code: line and byte offset, plus
// an exclusive Start/End range into the file's rune stream.
type Span struct {
	Filename string
	Line     int
	Offset   int
	Start    int
	End      int
}

// IsValid reports whether the span carries real location information.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// String renders "file:line:offset", the location format spec §7 mandates.
func (s Span) String() string {
	file := s.Filename
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", file, s.Line, s.Offset)
}

// Diagnostic is a single compiler error or warning surfaced to the user.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span

	// Help is an optional one-line suggestion, e.g. a "did you mean"
	// hint computed from identifier edit distance.
	Help string
	// Notes are additional one-line annotations, e.g. pretty-printed
	// expected/actual types for a type-mismatch diagnostic.
	Notes []string
}

// WithHelp attaches a help suggestion and returns the diagnostic for chaining.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithNote appends a note and returns the diagnostic for chaining.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// Error implements the error interface so a Diagnostic can be returned
// or wrapped anywhere Go code expects an error.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span.String(), d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}
