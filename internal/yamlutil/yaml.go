// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Whitelist files, token definition files and the CLI config all go through
// here so the size limit and strictness rules are applied in one place.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// ReadLimited reads at most MaxInputSize+1 bytes from r so oversized input
// is reported by the unmarshal functions instead of being buffered whole.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: reading input: %w", err)
	}
	return data, nil
}

// ReadFile reads path and unmarshals it strictly into v.
// os errors are returned unwrapped so callers can test for fs.ErrNotExist.
func ReadFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := ReadLimited(f)
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}
