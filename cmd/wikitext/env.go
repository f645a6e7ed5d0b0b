package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-wikitext/internal/logging"
	"go.uber.org/automaxprocs/maxprocs"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger logging.Logger // Warnings about whitelist and token files

	// TuneProcs adjusts GOMAXPROCS once flags are known. Nil skips tuning.
	TuneProcs func(verbose bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Logger:    logging.Klog(),
		TuneProcs: tuneMaxProcs,
	}
}

// tuneMaxProcs sets GOMAXPROCS from the container CPU quota, logging the
// decision only in verbose mode.
func tuneMaxProcs(verbose bool) {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logf))
}
