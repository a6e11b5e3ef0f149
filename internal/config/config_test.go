package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COMPONENTDIFF_DEFAULTS", "COMPONENTDIFF_CORPUS", "COMPONENTDIFF_HISTORY", "COMPONENTDIFF_CONFIG"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_DATA_HOME", "/xdg")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDefaultsDir, cfg.DefaultsDir)
	assert.Equal(t, DefaultCorpusDir, cfg.CorpusDir)
	assert.Equal(t, domain.SelectionThreshold, cfg.Threshold)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, filepath.Join("/xdg", "componentdiff", "history.db"), cfg.HistoryDB)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPONENTDIFF_CORPUS", "/env/corpus")

	path := filepath.Join(t.TempDir(), "componentdiff.yaml")
	content := `
defaults_dir: /cfg/defaults
corpus_dir: /cfg/corpus
threshold: 75
workers: 4
strategies:
  - type: spindle
    fields:
      - path: rpm
        rule: median
      - path: coolant/mode
        rule: literal
        literal: flood
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/cfg/defaults", cfg.DefaultsDir)
	assert.Equal(t, "/env/corpus", cfg.CorpusDir, "env wins over the file")
	assert.Equal(t, 75.0, cfg.Threshold)
	assert.Equal(t, 4, cfg.Workers)

	registry, err := cfg.Registry()
	require.NoError(t, err)

	s, ok := registry.Lookup("spindle")
	require.True(t, ok)
	assert.Equal(t, []domain.FieldRule{
		domain.MedianOf("rpm"),
		domain.Fixed("coolant/mode", "flood"),
	}, s.Fields)

	_, ok = registry.Lookup(domain.TypeRates)
	assert.True(t, ok, "built-in strategies stay registered")
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad yaml", content: "threshold: [", errMsg: "failed to parse config"},
		{name: "threshold", content: "threshold: 101", errMsg: "threshold must be between 0 and 100"},
		{name: "workers", content: "workers: -1", errMsg: "workers must not be negative"},
		{name: "unknown rule", content: "strategies:\n  - type: rates\n    fields:\n      - path: feed\n        rule: mean\n", errMsg: `unknown rule "mean"`},
		{name: "no fields", content: "strategies:\n  - type: rates\n", errMsg: "has no fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("COMPONENTDIFF_CONFIG", "")
	assert.Equal(t, DefaultConfigFile, ConfigPath())

	t.Setenv("COMPONENTDIFF_CONFIG", "/etc/componentdiff.yaml")
	assert.Equal(t, "/etc/componentdiff.yaml", ConfigPath())
}
