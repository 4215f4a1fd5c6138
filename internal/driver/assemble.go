package driver

import (
	"context"
	"fmt"
	"os"

	"github.com/luka-lang/lukac/internal/codegen"
	"github.com/luka-lang/lukac/internal/logger"
)

// assembleIfRequested writes the emitted IR to opts.Output (or a
// derived path) and stops there when AssembleOnly or EmitBitcode is
// set; otherwise it optionally optimizes the IR and hands it to clang,
// passing -c (no link step) when CompileOnly or NoLink is set.
func assembleIfRequested(ctx context.Context, opts Options, result *codegen.Result, log *logger.Logger) error {
	irPath := opts.Output
	if irPath == "" {
		irPath = "a.out.ll"
	}
	if opts.EmitBitcode || opts.AssembleOnly {
		irPath = outputPathFor(opts, ".ll")
	}

	if err := os.WriteFile(irPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("writing emitted IR to %s: %w", irPath, err)
	}

	if opts.AssembleOnly || opts.EmitBitcode {
		return nil
	}

	level := codegen.OptimizeLevel(opts.OptLevel)
	optimized, err := codegen.Optimize(ctx, irPath, level, log)
	if err != nil {
		return err
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = "a.out"
	}
	compileOnly := opts.CompileOnly || opts.NoLink
	return codegen.Assemble(ctx, optimized, outPath, compileOnly)
}

func outputPathFor(opts Options, ext string) string {
	if opts.Output != "" {
		return opts.Output
	}
	return "a.out" + ext
}
