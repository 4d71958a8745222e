package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babarot/wrm/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
core:
  quiet: true
  protect:
    globs:
      - "**/.git"
`)
	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.True(t, cfg.Core.Quiet)
	assert.False(t, cfg.Core.Noninteractive)
	assert.Equal(t, []string{"**/.git"}, cfg.Core.Protect.Globs)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "10MB", cfg.Logging.Rotation.MaxSize)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "bad level",
			content: "logging:\n  level: verbose\n",
			field:   "level",
		},
		{
			name:    "bad glob",
			content: "core:\n  protect:\n    globs: [\"[a\"]\n",
			field:   "globs",
		},
		{
			name:    "bad pattern",
			content: "core:\n  protect:\n    patterns: [\"(\"]\n",
			field:   "patterns",
		},
		{
			name:    "bad size",
			content: "logging:\n  rotation:\n    max_size: lots\n",
			field:   "max_size",
		},
		{
			name:    "negative max files",
			content: "logging:\n  rotation:\n    max_files: -1\n",
			field:   "max_files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse(writeConfig(t, "core: [unclosed"))
	assert.Error(t, err)
}

func TestParseMissingExplicitPath(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Couldn't find")
	assert.Contains(t, msg, "logging:")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrm", "config.yaml")
	orig := env.WRM_CONFIG_PATH
	env.WRM_CONFIG_PATH = path
	t.Cleanup(func() { env.WRM_CONFIG_PATH = orig })

	cfg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, *NewDefaultConfig(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "noninteractive: false"))
}

func TestBaseDir(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	t.Setenv("XDG_CONFIG_HOME", "")
	origDir := env.WRM_DIR
	t.Cleanup(func() { env.WRM_DIR = origDir })

	env.WRM_DIR = ""
	cfg := *NewDefaultConfig()

	dir, err := cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.config/wrm", dir)

	cfg.Core.Dir = "~/trashcan"
	dir, err = cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/trashcan", dir)

	cfg.Core.Dir = "$HOME/wrm-data"
	dir, err = cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/wrm-data", dir)

	env.WRM_DIR = "/srv/wrm"
	dir, err = cfg.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/wrm", dir)
}
