// Package config builds the immutable per-invocation configuration: the API
// credential, the platform profile table, and the reasoning budget table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/strrl/multi-draft/internal/budget"
	"github.com/strrl/multi-draft/internal/platform"
)

const apiKeyEnv = "OPENROUTER_API_KEY"

var errMissingAPIKey = fmt.Errorf("%s not set in environment or .env file", apiKeyEnv)

// Config is constructed once at startup and passed explicitly to each
// component; it is never mutated afterwards.
type Config struct {
	APIKey    string
	Platforms platform.Table
	Budget    budget.Table
}

// fileConfig is the optional on-disk override file (~/.multi-draft.yaml).
type fileConfig struct {
	ReasoningOverhead map[string]int             `yaml:"reasoning_overhead"`
	Platforms         map[string]profileOverride `yaml:"platforms"`
}

type profileOverride struct {
	MaxTokens      int `yaml:"max_tokens"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load resolves the credential and assembles the configuration. A missing
// credential is fatal here, before any network call is attempted.
func Load(repoRoot string) (*Config, error) {
	apiKey, err := ResolveAPIKey(repoRoot)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:    apiKey,
		Platforms: platform.DefaultTable(),
		Budget:    budget.DefaultTable(),
	}

	if err := cfg.applyOverrides(overridePath()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolveAPIKey reads the credential from the environment, falling back to a
// .env file under repoRoot. Values already set in the environment win.
func ResolveAPIKey(repoRoot string) (string, error) {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}

	envPath := filepath.Join(repoRoot, ".env")
	vars, err := godotenv.Read(envPath)
	if err != nil {
		return "", errMissingAPIKey
	}
	if key := vars[apiKeyEnv]; key != "" {
		return key, nil
	}
	return "", errMissingAPIKey
}

// ResolveEnv reads a variable from the environment, falling back to the
// .env file under repoRoot. Returns "" when the variable is set nowhere.
func ResolveEnv(repoRoot, key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	vars, err := godotenv.Read(filepath.Join(repoRoot, ".env"))
	if err != nil {
		return ""
	}
	return vars[key]
}

func overridePath() string {
	if path := os.Getenv("MULTI_DRAFT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".multi-draft.yaml")
}

// applyOverrides layers the optional override file on top of the defaults.
// An absent file is fine; a malformed one is an error.
func (c *Config) applyOverrides(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var overrides fileConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for modelID, overhead := range overrides.ReasoningOverhead {
		if overhead > 0 {
			c.Budget.Overhead[modelID] = overhead
		}
	}

	for tag, override := range overrides.Platforms {
		profile := c.Platforms[tag]
		if override.MaxTokens > 0 {
			profile.MaxTokens = override.MaxTokens
		}
		if override.TimeoutSeconds > 0 {
			profile.TimeoutSeconds = override.TimeoutSeconds
		}
		c.Platforms[tag] = profile
	}

	return nil
}
