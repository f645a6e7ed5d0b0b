package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Text.UseHTMLWhitelist {
		t.Error("Text.UseHTMLWhitelist = false, want true")
	}
	if cfg.Text.HTMLWhitelistPath != "" {
		t.Errorf("Text.HTMLWhitelistPath = %q, want empty", cfg.Text.HTMLWhitelistPath)
	}
	if cfg.Links.PageURLPrefix != "/wiki" {
		t.Errorf("Links.PageURLPrefix = %q, want /wiki", cfg.Links.PageURLPrefix)
	}
	if cfg.Links.NewPageURL != "/pages/new" {
		t.Errorf("Links.NewPageURL = %q, want /pages/new", cfg.Links.NewPageURL)
	}
	if cfg.Links.AttachmentsURLPath != "/attachments/" {
		t.Errorf("Links.AttachmentsURLPath = %q, want /attachments/", cfg.Links.AttachmentsURLPath)
	}
	if cfg.TOC.MaxDepth != 3 {
		t.Errorf("TOC.MaxDepth = %d, want 3", cfg.TOC.MaxDepth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() unexpected error: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", fieldName: "test", value: "", maxLength: 10},
		{name: "value at limit is valid", fieldName: "test", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", fieldName: "test.field", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "empty link fields are valid",
			modify: func(c *Config) { c.Links = LinksConfig{} },
		},
		{
			name:   "zero TOC depth is valid",
			modify: func(c *Config) { c.TOC.MaxDepth = 0 },
		},
		{
			name:    "TOC depth above 6",
			modify:  func(c *Config) { c.TOC.MaxDepth = 7 },
			wantErr: ErrInvalidField,
		},
		{
			name:    "negative TOC depth",
			modify:  func(c *Config) { c.TOC.MaxDepth = -2 },
			wantErr: ErrInvalidField,
		},
		{
			name:    "relative page prefix",
			modify:  func(c *Config) { c.Links.PageURLPrefix = "wiki" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "relative new page URL",
			modify:  func(c *Config) { c.Links.NewPageURL = "new" },
			wantErr: ErrInvalidField,
		},
		{
			name:   "absolute attachments URL is valid",
			modify: func(c *Config) { c.Links.AttachmentsURLPath = "https://cdn.example.com/files/" },
		},
		{
			name:    "attachments URL too long",
			modify:  func(c *Config) { c.Links.AttachmentsURLPath = "/" + strings.Repeat("a", MaxURLLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "whitelist path too long",
			modify:  func(c *Config) { c.Text.HTMLWhitelistPath = strings.Repeat("p", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "TOC title too long",
			modify:  func(c *Config) { c.TOC.Title = strings.Repeat("t", MaxTOCTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "page without title",
			modify:  func(c *Config) { c.Pages = []PageConfig{{Title: "  ", URL: "/x"}} },
			wantErr: ErrInvalidField,
		},
		{
			name:    "page title too long",
			modify:  func(c *Config) { c.Pages = []PageConfig{{Title: strings.Repeat("t", MaxPageTitleLength+1)}} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "pages with and without URL",
			modify: func(c *Config) { c.Pages = []PageConfig{{Title: "Home"}, {Title: "FAQ", URL: "/help/faq"}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "wiki.yaml", `text:
  useHtmlWhiteList: false
  customTokensPath: "/etc/wiki/tokens.yaml"
links:
  attachmentsUrlPath: "/files/"
toc:
  title: "On this page"
  maxDepth: 2
pages:
  - title: Home
  - title: FAQ
    url: /help/faq
`)

		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &Config{
			Text: TextConfig{
				UseHTMLWhitelist: false,
				CustomTokensPath: "/etc/wiki/tokens.yaml",
			},
			Links: LinksConfig{
				PageURLPrefix:      "/wiki",
				NewPageURL:         "/pages/new",
				AttachmentsURLPath: "/files/",
			},
			TOC: TOCConfig{Title: "On this page", MaxDepth: 2},
			Pages: []PageConfig{
				{Title: "Home"},
				{Title: "FAQ", URL: "/help/faq"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "wiki.yaml", "toc:\n  title: Index\n")

		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Text.UseHTMLWhitelist {
			t.Error("Text.UseHTMLWhitelist should default to true")
		}
		if got.TOC.MaxDepth != 3 {
			t.Errorf("TOC.MaxDepth = %d, want 3", got.TOC.MaxDepth)
		}
		if got.TOC.Title != "Index" {
			t.Errorf("TOC.Title = %q, want Index", got.TOC.Title)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "wiki.yaml", "text:\n  theme: dark\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "wiki.yaml", "pages: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "wiki.yaml", "toc:\n  maxDepth: 9\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})

	t.Run("config name resolves in user config dir", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)
		t.Setenv("HOME", configHome)
		t.Setenv("AppData", configHome)

		userDir, err := os.UserConfigDir()
		if err != nil {
			t.Skipf("no user config dir: %v", err)
		}
		dir := filepath.Join(userDir, AppName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		writeConfig(t, dir, "team-wiki-test.yml", "toc:\n  title: Team\n")

		got, err := LoadConfig("team-wiki-test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TOC.Title != "Team" {
			t.Errorf("TOC.Title = %q, want Team", got.TOC.Title)
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := LoadConfig("no-such-wiki-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"no-such-wiki-config.yaml", "no-such-wiki-config.yml"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})
}
