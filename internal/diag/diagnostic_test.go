package diag_test

import (
	"testing"

	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	err := lexer.LexerError{
		Kind:    lexer.ErrUnterminatedString,
		Message: "unterminated string literal",
		Span: lexer.Span{
			FilePath: "a.luka",
			Line:     1,
			Offset:   3,
			Start:    2,
			End:      6,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLex {
		t.Fatalf("expected stage %q, got %q", diag.StageLex, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexUnterminatedString {
		t.Fatalf("expected code %q, got %q", diag.CodeLexUnterminatedString, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}

	wantSpan := diag.Span{
		Filename: err.Span.FilePath,
		Line:     err.Span.Line,
		Offset:   err.Span.Offset,
		Start:    err.Span.Start,
		End:      err.Span.End,
	}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
}
