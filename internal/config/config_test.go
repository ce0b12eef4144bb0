package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/llm"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"user_id": "3f1c8d3e-0000-0000-0000-000000000001",
		"domain": "Software Engineering",
		"difficulty": "expert",
		"duration_minutes": 45,
		"model_advanced": "gemini-2.5-pro"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Software Engineering", cfg.Domain)
	assert.Equal(t, "expert", cfg.Difficulty)
	assert.Equal(t, 45, cfg.DurationMinutes)
	assert.Equal(t, "gemini-2.5-pro", cfg.ModelAdvanced)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty", cfg: Config{}},
		{name: "valid difficulty", cfg: Config{Difficulty: "intermediate"}},
		{name: "invalid difficulty", cfg: Config{Difficulty: "impossible"}, wantErr: true},
		{name: "negative duration", cfg: Config{DurationMinutes: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Domain: "Data Science"}
	defaults := Config{
		Domain:          "Software Engineering",
		Difficulty:      "beginner",
		DurationMinutes: 30,
		APIKey:          "from-file",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "Data Science", merged.Domain) // explicit value wins
	assert.Equal(t, "beginner", merged.Difficulty)
	assert.Equal(t, 30, merged.DurationMinutes)
	assert.Equal(t, "from-file", merged.APIKey)
}

func TestLLMConfig_Overrides(t *testing.T) {
	cfg := Config{ModelStandard: "gemini-override"}

	llmCfg := cfg.LLMConfig()

	assert.Equal(t, "gemini-override", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierAdvanced), llmCfg.GetModel(llm.TierAdvanced))
}
