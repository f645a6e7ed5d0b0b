package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		multiple     bool
		want         string
	}{
		{
			name:      "next to source",
			inputPath: filepath.Join("docs", "page.md"),
			want:      filepath.Join("docs", "page.html"),
		},
		{
			name:      "into output directory",
			inputPath: filepath.Join("docs", "page.markdown"),
			outputDir: "public",
			want:      filepath.Join("public", "page.html"),
		},
		{
			name:      "explicit html file for a single input",
			inputPath: "page.md",
			outputDir: filepath.Join("public", "index.html"),
			want:      filepath.Join("public", "index.html"),
		},
		{
			name:      "html-looking directory with multiple inputs",
			inputPath: "page.md",
			outputDir: "site.html",
			multiple:  true,
			want:      filepath.Join("site.html", "page.html"),
		},
		{
			name:         "tree mirrored under output directory",
			inputPath:    filepath.Join("wiki", "guides", "setup.md"),
			outputDir:    "public",
			baseInputDir: "wiki",
			multiple:     true,
			want:         filepath.Join("public", "guides", "setup.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir, tt.multiple)
			if err != nil {
				t.Fatalf("resolveOutputPath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	for _, name := range []string{"a.md", filepath.Join("sub", "b.wiki"), filepath.Join("sub", "c.txt")} {
		path := filepath.Join(src, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	got, err := discoverFiles([]string{src, stdinPath}, "out")
	if err != nil {
		t.Fatalf("discoverFiles() unexpected error: %v", err)
	}

	want := []FileToRender{
		{InputPath: filepath.Join(src, "a.md"), OutputPath: filepath.Join("out", "a.html")},
		{InputPath: filepath.Join(src, "sub", "b.wiki"), OutputPath: filepath.Join("out", "sub", "b.html")},
		{InputPath: stdinPath, OutputPath: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "missing path", input: filepath.Join(dir, "missing.md"), wantErr: os.ErrNotExist},
		{name: "wrong extension", input: txt, wantErr: ErrInvalidExtension},
		{name: "directory without markup", input: empty, wantErr: ErrNoMarkupFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles([]string{tt.input}, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStdinOutputPath(t *testing.T) {
	t.Parallel()

	if got := stdinOutputPath(""); got != "" {
		t.Errorf("stdinOutputPath(\"\") = %q, want stdout", got)
	}
	if got := stdinOutputPath("page.HTML"); got != "page.HTML" {
		t.Errorf("stdinOutputPath(page.HTML) = %q, want the file", got)
	}
	if got := stdinOutputPath("public"); got != "" {
		t.Errorf("stdinOutputPath(public) = %q, want stdout", got)
	}
}
