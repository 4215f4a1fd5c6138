// Command lukac is the Luka front-end driver of spec §6: it reads a
// source file, parses and resolves it, type-checks it, and — when a
// code generation backend is linked in — emits and optionally
// assembles/links it. The front end proper lives in internal/driver;
// this file is the cobra/pflag surface spec §6 contracts.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/luka-lang/lukac/internal/diag"
	"github.com/luka-lang/lukac/internal/driver"
	"github.com/luka-lang/lukac/internal/logger"
)

func main() {
	os.Exit(int(run()))
}

func run() driver.ExitCode {
	// An optional .env file is loaded into the process environment.
	// The only variable read from it is HOMEBREW_PREFIX (an LLVM tool
	// search root, see codegen's findTool); optimization level and
	// verbosity come from the flags below only.
	_ = godotenv.Load()

	var opts driver.Options
	var verboseCount int

	root := &cobra.Command{
		Use:   "lukac [source file]",
		Short: "Luka front-end compiler driver",
		Long: "lukac parses, resolves, and type-checks a Luka source file, " +
			"handing the resolved tree to a code generation backend.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Verbosity = verboseCount
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.Output, "output", "o", "", "output path")
	flags.CountVarP(&verboseCount, "verbose", "v", "increase verbosity (repeatable)")
	flags.StringVarP(&opts.OptLevel, "optimize", "O", "0", "optimization level (0-3)")
	flags.BoolVar(&opts.EmitBitcode, "emit-bitcode", false, "emit LLVM IR instead of assembling")
	flags.BoolVarP(&opts.CompileOnly, "compile-only", "c", false, "compile to an object file, do not link")
	flags.BoolVarP(&opts.AssembleOnly, "assemble-only", "S", false, "stop after emitting assembly/IR")
	flags.BoolVar(&opts.NoLink, "no-link", false, "stop after compiling, do not invoke the linker")
	flags.StringVar(&opts.LogPath, "log", "", "append-only log file path (default: lukac.log)")
	flags.StringVar(&opts.CachePath, "module-cache", "", "sqlite path for the cross-import module cache (default: in-memory)")

	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return driver.ExitWrongParams
	}
	if opts.Input == "" {
		return driver.ExitWrongParams
	}
	if !validOptLevel(opts.OptLevel) {
		fmt.Fprintf(os.Stderr, "lukac: invalid optimization level %q, expected 0-3\n", opts.OptLevel)
		return driver.ExitWrongParams
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = "lukac.log"
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lukac: cannot open log file %s: %v\n", logPath, err)
		return driver.ExitCantOpenFile
	}
	defer logFile.Close()
	log := logger.New(logFile, logger.WithVerbosity(opts.Verbosity))
	log.Info("starting build of %s", opts.Input)

	if _, rerr := driver.Run(context.Background(), opts, log); rerr != nil {
		return reportFailure(rerr, log)
	}

	log.Info("build of %s succeeded (build id %s)", opts.Input, log.BuildID())
	return driver.ExitSuccess
}

func validOptLevel(lvl string) bool {
	n, err := strconv.Atoi(lvl)
	return err == nil && n >= 0 && n <= 3
}

func reportFailure(err error, log *logger.Logger) driver.ExitCode {
	failure, ok := err.(*driver.Failure)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		log.Error("build failed: %v", err)
		return driver.ExitGeneralError
	}

	formatter := diag.NewFormatter()
	for _, d := range failure.Diagnostics {
		formatter.Format(d)
		log.Error("%s", d.Error())
	}
	return failure.Code
}
