package codegen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// findTool locates name on PATH first, falling back to the common
// Homebrew LLVM install locations the driver environment may use
// instead of a PATH entry.
func findTool(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	brewPrefix := os.Getenv("HOMEBREW_PREFIX")
	if brewPrefix != "" {
		candidate := filepath.Join(brewPrefix, "opt/llvm/bin", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
		candidate := filepath.Join(prefix, "opt/llvm/bin", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("codegen: %s not found in PATH or common installation locations", name)
}

// FindLLC locates the llc static compiler.
func FindLLC() (string, error) { return findTool("llc") }

// FindOpt locates the opt optimizer.
func FindOpt() (string, error) { return findTool("opt") }

// FindClang locates the clang driver used to assemble and link.
func FindClang() (string, error) { return findTool("clang") }

// OptimizeLevel is the closed set of optimization levels the driver's
// -O flag accepts, mapped to an `opt -passes=` pipeline name.
type OptimizeLevel string

const (
	OptimizeNone OptimizeLevel = "0"
	OptimizeLess OptimizeLevel = "1"
	OptimizeStd  OptimizeLevel = "2"
	OptimizeMax  OptimizeLevel = "3"
)

func (lvl OptimizeLevel) pipeline() string {
	switch lvl {
	case OptimizeNone:
		return ""
	case OptimizeLess:
		return "default<O1>"
	case OptimizeMax:
		return "default<O3>"
	default:
		return "default<O2>"
	}
}

// Optimize runs `opt` over irPath at the given level, returning the
// path to the optimized IR file. A missing opt tool, or a timed-out or
// failing run, is non-fatal: codegen falls back to the unoptimized
// file rather than aborting the build, since optimization is strictly
// an enhancement over a build that already type-checked.
func Optimize(ctx context.Context, irPath string, lvl OptimizeLevel, log Logger) (string, error) {
	pipeline := lvl.pipeline()
	if pipeline == "" {
		return irPath, nil
	}

	optPath, err := FindOpt()
	if err != nil {
		log.Debug("opt not found, skipping optimization: %v", err)
		return irPath, nil
	}

	outPath := irPath + ".opt"
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	args := []string{"-S", "-o", outPath, "-passes=" + pipeline, irPath}
	cmd := exec.CommandContext(runCtx, optPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	log.Debug("running %s %v", optPath, args)
	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			log.Warning("optimization of %s timed out, using unoptimized IR", irPath)
		} else {
			log.Warning("optimization of %s failed, using unoptimized IR: %v (%s)", irPath, err, stderr.String())
		}
		return irPath, nil
	}
	return outPath, nil
}

// Assemble invokes clang to turn an LLVM IR file into an object file
// or linked executable at outPath; compileOnly requests `-c` (stop
// after assembling, no link step).
func Assemble(ctx context.Context, irPath, outPath string, compileOnly bool) error {
	clangPath, err := FindClang()
	if err != nil {
		return fmt.Errorf("codegen: %w", err)
	}

	args := []string{irPath, "-o", outPath}
	if compileOnly {
		args = append(args, "-c")
	}

	cmd := exec.CommandContext(ctx, clangPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("codegen: clang %v: %w (%s)", args, err, stderr.String())
	}
	return nil
}

// Logger is the minimal logging surface Optimize needs, satisfied by
// *logger.Logger without codegen importing it for its full API.
type Logger interface {
	Debug(format string, a ...interface{})
	Warning(format string, a ...interface{})
}
