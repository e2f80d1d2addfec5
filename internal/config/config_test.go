package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
logger:
  level: debug
quiz:
  default_questions: 3
  similarity_threshold: 0.7
  seed: 42
  workers: 4
export:
  format: yaml
  path: out.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 3, cfg.Quiz.DefaultQuestions)
	assert.Equal(t, 0.7, cfg.Quiz.SimilarityThreshold)
	assert.Equal(t, int64(42), cfg.Quiz.Seed)
	assert.Equal(t, 4, cfg.Quiz.Workers)
	assert.Equal(t, 7, cfg.Quiz.AutoQuizQuestions)
	assert.Equal(t, "yaml", cfg.Export.Format)
	assert.Equal(t, "out.yaml", cfg.Export.Path)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"threshold above one", func(c *Config) { c.Quiz.SimilarityThreshold = 1.5 }, true},
		{"no questions", func(c *Config) { c.Quiz.DefaultQuestions = 0 }, true},
		{"bad export format", func(c *Config) { c.Export.Format = "xml" }, true},
		{"zero workers is clamped", func(c *Config) { c.Quiz.Workers = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, cfg.Quiz.Workers, 1)
		})
	}
}
