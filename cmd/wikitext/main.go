package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/alnah/go-wikitext/internal/config"
	"github.com/alnah/go-wikitext/internal/fileutil"
	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/whitelist"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI usage.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoWhitelist = errors.New("sanitization is disabled, there is no whitelist to dump")
)

func main() {
	// SIGTERM is never delivered on Windows.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	klog.Flush()
	os.Exit(code)
}

// runMain parses args, runs the command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "wikitext %s\n", Version)
		return ExitSuccess
	}

	if env.TuneProcs != nil {
		env.TuneProcs(flags.common.verbose)
	}

	if err := run(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run orchestrates loading configuration and rendering the inputs.
func run(ctx context.Context, inputs []string, flags *renderFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.summary < 0 {
		return fmt.Errorf("%w: --summary must be >= 0, got %d", ErrUsage, flags.summary)
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.OrDefault(env.Logger)
	if flags.common.quiet {
		logger = logging.Discard
	}

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	if flags.dumpWhitelist {
		return dumpWhitelist(renderer.Whitelist(), flags.output, env.Stdout)
	}

	if len(inputs) == 0 {
		return ErrNoInput
	}
	if countStdin(inputs) > 1 {
		return fmt.Errorf("%w: standard input can only be read once", ErrUsage)
	}

	files, err := discoverFiles(inputs, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := resolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results := renderBatch(ctx, renderer, files, batchParams{
		workers:    workers,
		summaryLen: flags.summary,
		stdin:      env.Stdin,
	})

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failed > 0 {
		return fmt.Errorf("%d render(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// dumpWhitelist writes w as YAML to the output file, or to stdout when no
// output is given.
func dumpWhitelist(w *whitelist.Whitelist, output string, stdout io.Writer) error {
	if w == nil {
		return ErrNoWhitelist
	}

	data, err := whitelist.Marshal(w, whitelist.FormatYAML)
	if err != nil {
		return fmt.Errorf("encoding whitelist: %w", err)
	}

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFileAtomic(output, string(data), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func countStdin(inputs []string) int {
	n := 0
	for _, in := range inputs {
		if in == stdinPath {
			n++
		}
	}
	return n
}
