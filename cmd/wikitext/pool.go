package main

import (
	"errors"
	"fmt"
	"runtime"
)

// MaxWorkers bounds the --workers flag.
const MaxWorkers = 64

// ErrInvalidWorkerCount reports a --workers value out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// resolvePoolSize determines the number of render workers.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers. Rendering is
	// CPU bound, so one worker per available processor.
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 16
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
