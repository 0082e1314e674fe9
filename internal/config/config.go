// Package config provides configuration for the hook, resolved from the
// environment, an optional .env file, and an optional per-repository
// configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultModel is the generation model used when no override is configured
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxAttempts is the total number of generation attempts
const DefaultMaxAttempts = 3

// DefaultTransientMarkers are substrings that mark an error as transient
// and therefore retryable. Matching is case-insensitive. This is a
// heuristic over error text, not a structured code from the provider.
var DefaultTransientMarkers = []string{
	"503",
	"unavailable",
	"overloaded",
	"rate limit",
	"rate_limited",
	"timeout",
	"timed out",
}

// Config holds the resolved configuration for a hook run
type Config struct {
	APIKey           string
	Model            string
	MaxAttempts      int
	TransientMarkers []string
}

// Options controls how configuration is loaded
type Options struct {
	// EnvFile is an optional path to a .env file. Empty means "try .env
	// in the working directory". A missing file is never an error.
	EnvFile string

	// RepoRoot, when set, enables per-repository overrides from
	// .git/.draftmsg_config.
	RepoRoot string
}

// repoConfig is the on-disk shape of the per-repository config file
type repoConfig struct {
	Model            *string  `json:"model,omitempty"`
	MaxAttempts      *int     `json:"maxAttempts,omitempty"`
	TransientMarkers []string `json:"transientMarkers,omitempty"`
}

// Load resolves configuration. It never fails on a missing API key;
// callers check Config.APIKey so that the credential error stays a
// distinct failure class.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		APIKey:           resolveAPIKey(),
		Model:            DefaultModel,
		MaxAttempts:      DefaultMaxAttempts,
		TransientMarkers: DefaultTransientMarkers,
	}

	if model := os.Getenv("DRAFTMSG_MODEL"); model != "" {
		cfg.Model = model
	}

	if opts.RepoRoot != "" {
		if err := applyRepoConfig(cfg, opts.RepoRoot); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// resolveAPIKey reads the credential from the environment, accepting the
// Google SDK's alternate variable name as a fallback
func resolveAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// applyRepoConfig overlays settings from .git/.draftmsg_config if present
func applyRepoConfig(cfg *Config, repoRoot string) error {
	configPath := filepath.Join(repoRoot, ".git", ".draftmsg_config")

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config doesn't exist - keep defaults
		return nil
	}

	var rc repoConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return fmt.Errorf("failed to parse repo config: %w", err)
	}

	if rc.Model != nil && *rc.Model != "" {
		cfg.Model = *rc.Model
	}
	if rc.MaxAttempts != nil && *rc.MaxAttempts > 0 {
		cfg.MaxAttempts = *rc.MaxAttempts
	}
	if len(rc.TransientMarkers) > 0 {
		cfg.TransientMarkers = rc.TransientMarkers
	}

	return nil
}
