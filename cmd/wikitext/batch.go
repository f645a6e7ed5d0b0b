package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	wikitext "github.com/alnah/go-wikitext"
	"github.com/alnah/go-wikitext/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadMarkup  = errors.New("failed to read markup file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// PageRenderer is the interface for the shared renderer.
type PageRenderer interface {
	Render(ctx context.Context, markup string) (*wikitext.Page, error)
}

// Compile-time interface implementation check.
var _ PageRenderer = (*wikitext.Renderer)(nil)

// batchParams groups parameters shared across the batch.
type batchParams struct {
	workers    int
	summaryLen int // > 0 = summaries instead of HTML
	stdin      io.Reader
}

// outputKind says where a render result goes.
type outputKind int

const (
	outputFile outputKind = iota
	outputStdout
	outputSummary
)

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Kind       outputKind
	Text       string // HTML for outputStdout, plain text for outputSummary
	Err        error
	Duration   time.Duration
}

// renderBatch renders files concurrently with a fixed number of workers
// sharing one renderer. Results keep the order of files.
func renderBatch(ctx context.Context, r PageRenderer, files []FileToRender, params batchParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := params.workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, r PageRenderer, f FileToRender, params batchParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := readInput(f.InputPath, params.stdin)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkup, err))
	}

	page, err := r.Render(ctx, content)
	if err != nil {
		return fail(err)
	}

	if params.summaryLen > 0 {
		result.Kind = outputSummary
		result.OutputPath = ""
		result.Text = wikitext.PlainText(page.HTML, params.summaryLen)
		result.Duration = time.Since(start)
		return result
	}

	if f.OutputPath == "" {
		result.Kind = outputStdout
		result.Text = page.HTML
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, page.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == stdinPath {
		if stdin == nil {
			return "", errors.New("standard input is not available")
		}
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	return string(data), err
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the first failed result's error.
func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults outputs render results using the environment writers.
// Returns the number of failed renders.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)
	wroteFiles := false

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		switch r.Kind {
		case outputSummary:
			fmt.Fprintf(env.Stdout, "%s: %s\n", r.InputPath, r.Text)

		case outputStdout:
			fmt.Fprint(env.Stdout, r.Text)

		default:
			wroteFiles = true
			if quiet {
				continue
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
			}
		}
	}

	if !quiet && wroteFiles && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
