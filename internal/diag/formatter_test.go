package diag_test

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/difftest"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	w.Close()
	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	return string(buf[:n])
}

func TestFormatterRendersLocationSnippetAndHelp(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "*.luka")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	src := "fn f() { let x: s32 = 1 }\n"
	if _, err := tmp.WriteString(src); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	tmp.Close()

	line := src[:len(src)-1]
	span := diag.Span{Filename: tmp.Name(), Line: 1, Offset: len(line), Start: len(line), End: len(line) + 1}
	d := diag.Diagnostic{
		Stage:    diag.StageParse,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  "expected `;`",
		Span:     span,
		Help:     "did you forget a semicolon?",
	}

	got := captureStderr(t, func() {
		diag.NewFormatter().Format(d)
	})

	want := fmt.Sprintf("%s: error[PARSE_UNEXPECTED_TOKEN]: expected `;`\n", span.String()) +
		fmt.Sprintf("  %4d | %s\n", span.Line, line) +
		fmt.Sprintf("       | %s%s\n", strings.Repeat(" ", len(line)), "^") +
		"  help: did you forget a semicolon?\n"

	difftest.Equal(t, "formatter output", want, got)
}
