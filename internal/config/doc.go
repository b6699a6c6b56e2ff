// Package config provides configuration for ptedit.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← PTEDIT_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ptedit.toml or ptedit.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied on top by the cli package.
//
// # Basic Usage
//
//	cfg, err := config.Load("ptedit.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(); err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
