package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads the config file at path over the defaults. The format is
// chosen by extension: .toml, .yaml or .yml. A missing file is not an error.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses data into cfg using the format implied by path.
func Decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, _ = derr.Position()
			}
			var serr *toml.StrictMissingError
			if errors.As(err, &serr) {
				perr.Message = serr.String()
			}
			return perr
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Encode renders cfg in the format implied by path.
func Encode(path string, cfg *Config) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("close encoder: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	if c.Engine.LogCapacity < 0 {
		return &ValidationError{Path: "engine.log_capacity", Message: "must not be negative", Value: c.Engine.LogCapacity}
	}
	if c.Engine.LogLimit < 0 {
		return &ValidationError{Path: "engine.log_limit", Message: "must not be negative", Value: c.Engine.LogLimit}
	}
	if c.Engine.MaxPieces < 0 {
		return &ValidationError{Path: "engine.max_pieces", Message: "must not be negative", Value: c.Engine.MaxPieces}
	}
	if c.Engine.MaxPieces == 1 || c.Engine.MaxPieces == 2 {
		return &ValidationError{Path: "engine.max_pieces", Message: "must be 0 or at least 3 to allow inserting inside a piece", Value: c.Engine.MaxPieces}
	}
	if c.Script.Timeout != "" {
		if d, err := time.ParseDuration(c.Script.Timeout); err != nil || d < 0 {
			return &ValidationError{Path: "script.timeout", Message: "must be a non-negative duration such as 5s", Value: c.Script.Timeout}
		}
	}
	if c.Save.FileMode > 0o777 {
		return &ValidationError{Path: "save.file_mode", Message: "must be a permission mode", Value: fmt.Sprintf("%#o", c.Save.FileMode)}
	}
	return nil
}
