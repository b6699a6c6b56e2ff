package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PTEDIT_"

// Environment variable names.
const (
	EnvLogLevel    = EnvPrefix + "LOG_LEVEL"
	EnvLogCapacity = EnvPrefix + "LOG_CAPACITY"
	EnvLogLimit    = EnvPrefix + "LOG_LIMIT"
	EnvMaxPieces   = EnvPrefix + "MAX_PIECES"
	EnvBackup      = EnvPrefix + "BACKUP"

	EnvScriptTimeout = EnvPrefix + "SCRIPT_TIMEOUT"
)

// ApplyEnv overrides settings from PTEDIT_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvScriptTimeout); ok {
		c.Script.Timeout = strings.TrimSpace(v)
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvLogCapacity, &c.Engine.LogCapacity},
		{EnvLogLimit, &c.Engine.LogLimit},
		{EnvMaxPieces, &c.Engine.MaxPieces},
	}
	for _, it := range ints {
		v, ok := lookup(it.env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", it.env, err)
		}
		*it.dst = n
	}

	if v, ok := lookup(EnvBackup); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBackup, err)
		}
		c.Save.Backup = b
	}
	return nil
}
