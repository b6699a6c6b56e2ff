package config

import (
	"os"
	"time"

	"github.com/dshills/ptedit/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultLogCapacity = 4096
	DefaultFileMode    = 0o644

	DefaultScriptTimeout = "5s"
)

// Config is the complete ptedit configuration.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Save   SaveConfig   `toml:"save" yaml:"save"`
	Script ScriptConfig `toml:"script" yaml:"script"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// EngineConfig tunes the piece table.
type EngineConfig struct {
	// LogCapacity preallocates the append log, in bytes.
	LogCapacity int `toml:"log_capacity" yaml:"log_capacity"`
	// LogLimit caps the bytes a session may insert. 0 means unlimited.
	LogLimit int `toml:"log_limit" yaml:"log_limit"`
	// MaxPieces caps the piece count. 0 means unlimited.
	MaxPieces int `toml:"max_pieces" yaml:"max_pieces"`
}

// SaveConfig controls how documents are written back.
type SaveConfig struct {
	// Backup keeps the previous file as <name>.bak.
	Backup bool `toml:"backup" yaml:"backup"`
	// FileMode is used for files that do not exist yet.
	FileMode uint32 `toml:"file_mode" yaml:"file_mode"`
}

// ScriptConfig controls Lua script runs.
type ScriptConfig struct {
	// Timeout bounds one script run, as a Go duration string. "0" disables it.
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Engine: EngineConfig{
			LogCapacity: DefaultLogCapacity,
		},
		Save:   SaveConfig{FileMode: DefaultFileMode},
		Script: ScriptConfig{Timeout: DefaultScriptTimeout},
	}
}

// BufferOptions translates the engine settings into buffer options.
func (c *Config) BufferOptions() []buffer.Option {
	var opts []buffer.Option
	if c.Engine.LogCapacity > 0 {
		opts = append(opts, buffer.WithLogCapacity(c.Engine.LogCapacity))
	}
	if c.Engine.LogLimit > 0 {
		opts = append(opts, buffer.WithLogLimit(c.Engine.LogLimit))
	}
	if c.Engine.MaxPieces > 0 {
		opts = append(opts, buffer.WithMaxPieces(c.Engine.MaxPieces))
	}
	return opts
}

// Mode returns the configured file mode for new files.
func (c *Config) Mode() os.FileMode {
	if c.Save.FileMode == 0 {
		return DefaultFileMode
	}
	return os.FileMode(c.Save.FileMode)
}

// ScriptTimeout returns the parsed script timeout. Invalid or empty values
// fall back to the default; Validate reports them.
func (c *Config) ScriptTimeout() time.Duration {
	if c.Script.Timeout == "" {
		d, _ := time.ParseDuration(DefaultScriptTimeout)
		return d
	}
	d, err := time.ParseDuration(c.Script.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultScriptTimeout)
	}
	return d
}
