package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-wikitext/internal/fileutil"
)

// stdinPath names standard input as an input argument.
const stdinPath = "-"

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have .md, .markdown or .wiki extension")
	ErrNoMarkupFiles    = errors.New("no markup files found")
)

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string // Empty = standard output
}

// discoverFiles finds all markup files named by inputs.
// Directories are walked recursively; their layout is mirrored under outputDir.
func discoverFiles(inputs []string, outputDir string) ([]FileToRender, error) {
	var files []FileToRender
	for _, input := range inputs {
		found, err := discoverInput(input, outputDir, len(inputs) > 1)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func discoverInput(inputPath, outputDir string, multiple bool) ([]FileToRender, error) {
	if inputPath == stdinPath {
		return []FileToRender{{InputPath: stdinPath, OutputPath: stdinOutputPath(outputDir)}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkupExtension(inputPath); err != nil {
			return nil, err
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "", multiple)
		if err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkupFile(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath, true)
		if err != nil {
			return err
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkupFiles, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for a markup file.
// A single input may be written to an explicit .html path; otherwise
// outputDir is a directory.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, multiple bool) (string, error) {
	htmlName, err := fileutil.ReplaceExtension(filepath.Base(inputPath), "html")
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), htmlName), nil
	}

	if !multiple && strings.EqualFold(filepath.Ext(outputDir), ".html") {
		return outputDir, nil
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), htmlName), nil
		}
	}

	return filepath.Join(outputDir, htmlName), nil
}

// stdinOutputPath writes stdin renders to stdout unless an .html file is named.
func stdinOutputPath(outputDir string) string {
	if strings.EqualFold(filepath.Ext(outputDir), ".html") {
		return outputDir
	}
	return ""
}

// validateMarkupExtension checks that the file has a markup extension.
func validateMarkupExtension(path string) error {
	if !fileutil.IsMarkupFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
