package codegen_test

import (
	"context"
	"os"
	"testing"

	"github.com/luka-lang/lukac/internal/codegen"
)

type nullLogger struct{}

func (nullLogger) Debug(format string, a ...interface{})   {}
func (nullLogger) Warning(format string, a ...interface{}) {}

func TestOptimizeNoneLevelReturnsInputUnchanged(t *testing.T) {
	got, err := codegen.Optimize(context.Background(), "/tmp/does-not-matter.ll", codegen.OptimizeNone, nullLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/does-not-matter.ll" {
		t.Fatalf("expected level 0 to pass the path through unchanged, got %s", got)
	}
}

func TestOptimizeFallsBackWhenOptMissing(t *testing.T) {
	t.Setenv("PATH", "")
	t.Setenv("HOMEBREW_PREFIX", "")

	path := "/tmp/unoptimized.ll"
	if err := os.WriteFile(path, []byte("; fake ir\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer os.Remove(path)

	got, err := codegen.Optimize(context.Background(), path, codegen.OptimizeStd, nullLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Fatalf("expected fallback to original path when opt is unavailable, got %s", got)
	}
}

func TestFindToolsReportErrorWhenAbsent(t *testing.T) {
	t.Setenv("PATH", "")
	t.Setenv("HOMEBREW_PREFIX", "")

	if _, err := codegen.FindLLC(); err == nil {
		t.Fatalf("expected an error locating llc with an empty PATH")
	}
	if _, err := codegen.FindOpt(); err == nil {
		t.Fatalf("expected an error locating opt with an empty PATH")
	}
	if _, err := codegen.FindClang(); err == nil {
		t.Fatalf("expected an error locating clang with an empty PATH")
	}
}
