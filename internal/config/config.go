package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-wikitext/internal/fileutil"
	"github.com/alnah/go-wikitext/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxURLLength       = 2048 // Browser limit
	MaxTOCTitleLength  = 100  // TOC title
	MaxPageTitleLength = 255  // Page title
)

// AppName is the directory searched under the user config dir.
const AppName = "go-wikitext"

// Config holds the renderer configuration read by the CLI.
type Config struct {
	Text  TextConfig   `yaml:"text"`
	Links LinksConfig  `yaml:"links"`
	TOC   TOCConfig    `yaml:"toc"`
	Pages []PageConfig `yaml:"pages"`
}

// TextConfig defines sanitization and custom token sources.
type TextConfig struct {
	UseHTMLWhitelist  bool   `yaml:"useHtmlWhiteList"`
	HTMLWhitelistPath string `yaml:"htmlElementWhiteListPath"` // Empty = built-in whitelist
	CustomTokensPath  string `yaml:"customTokensPath"`         // Empty = built-in tokens
}

// LinksConfig defines where rewritten links point.
type LinksConfig struct {
	PageURLPrefix      string `yaml:"pageUrlPrefix"`      // default: /wiki
	NewPageURL         string `yaml:"newPageUrl"`         // default: /pages/new
	AttachmentsURLPath string `yaml:"attachmentsUrlPath"` // default: /attachments/
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Title    string `yaml:"title"`
	MaxDepth int    `yaml:"maxDepth"` // 1-6, 0 = default 3
}

// PageConfig declares an existing page for link resolution.
type PageConfig struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"` // Empty = pageUrlPrefix + "/" + title
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("text.htmlElementWhiteListPath", c.Text.HTMLWhitelistPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("text.customTokensPath", c.Text.CustomTokensPath, MaxPathLength); err != nil {
		return err
	}

	links := []struct{ name, value string }{
		{"links.pageUrlPrefix", c.Links.PageURLPrefix},
		{"links.newPageUrl", c.Links.NewPageURL},
		{"links.attachmentsUrlPath", c.Links.AttachmentsURLPath},
	}
	for _, l := range links {
		if err := validateFieldLength(l.name, l.value, MaxURLLength); err != nil {
			return err
		}
	}
	for _, l := range links[:2] {
		if l.value != "" && !strings.HasPrefix(l.value, "/") {
			return fmt.Errorf("%w: %s must start with '/', got %q", ErrInvalidField, l.name, l.value)
		}
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if c.TOC.MaxDepth != 0 && (c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6) {
		return fmt.Errorf("%w: toc.maxDepth must be between 1 and 6, got %d", ErrInvalidField, c.TOC.MaxDepth)
	}

	for i, p := range c.Pages {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: pages[%d].title is required", ErrInvalidField, i)
		}
		if err := validateFieldLength(fmt.Sprintf("pages[%d].title", i), p.Title, MaxPageTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("pages[%d].url", i), p.URL, MaxURLLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a sanitizing configuration with built-in whitelist,
// tokens and link paths.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{UseHTMLWhitelist: true},
		Links: LinksConfig{
			PageURLPrefix:      "/wiki",
			NewPageURL:         "/pages/new",
			AttachmentsURLPath: "/attachments/",
		},
		TOC: TOCConfig{Title: "Contents", MaxDepth: 3},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-wikitext/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
