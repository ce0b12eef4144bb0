// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/interview-agent/internal/llm"
	"github.com/jonathan/interview-agent/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Candidate info
	UserID string `json:"user_id,omitempty"` // User UUID (required for DB-based runs)
	Name   string `json:"name,omitempty"`    // Candidate name
	Email  string `json:"email,omitempty"`   // Candidate email

	// Session defaults
	Domain          string `json:"domain,omitempty"`           // Interview domain name
	Difficulty      string `json:"difficulty,omitempty"`       // beginner, intermediate, or expert
	DurationMinutes int    `json:"duration_minutes,omitempty"` // Planned interview length

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information

	// Model overrides per tier
	ModelLite     string `json:"model_lite,omitempty"`
	ModelStandard string `json:"model_standard,omitempty"`
	ModelAdvanced string `json:"model_advanced,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Meant to be
// merged under flag and file values.
func FromEnv() Config {
	return Config{
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ModelLite:     os.Getenv("INTERVIEW_MODEL_LITE"),
		ModelStandard: os.Getenv("INTERVIEW_MODEL_STANDARD"),
		ModelAdvanced: os.Getenv("INTERVIEW_MODEL_ADVANCED"),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Difficulty {
	case "", types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyExpert:
	default:
		return fmt.Errorf("config error: 'difficulty' must be one of beginner, intermediate, expert")
	}

	if c.DurationMinutes < 0 {
		return fmt.Errorf("config error: 'duration_minutes' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer flag values over file values over
// environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Domain == "" {
		result.Domain = defaults.Domain
	}
	if result.Difficulty == "" {
		result.Difficulty = defaults.Difficulty
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}

	// Int fields: use default if zero
	if result.DurationMinutes == 0 {
		result.DurationMinutes = defaults.DurationMinutes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig builds the model configuration, applying any per-tier overrides.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.ModelLite != "" {
		cfg = cfg.WithModel(llm.TierLite, c.ModelLite)
	}
	if c.ModelStandard != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.ModelStandard)
	}
	if c.ModelAdvanced != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.ModelAdvanced)
	}
	return cfg
}
