package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	// Create isolated viper instance without loading user/system config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 2, cfg.Format.IndentWidth)
	assert.False(t, cfg.Format.SortKeys)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmtls.toml")
	contents := `
[log]
level = "debug"
json = true

[format]
indent_width = 4
sort_keys = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 4, cfg.Format.IndentWidth)
	assert.True(t, cfg.Format.SortKeys)
}

func TestLoadFromFile_PartialFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmtls.toml")
	require.NoError(t, os.WriteFile(path, []byte("[format]\nsort_keys = true\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Format.SortKeys)
	assert.Equal(t, 2, cfg.Format.IndentWidth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestIndent(t *testing.T) {
	tests := []struct {
		width int
		want  string
	}{
		{2, "  "},
		{4, "    "},
		{0, "  "},
		{-1, "  "},
		{1, " "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatConfig{IndentWidth: tt.width}.Indent())
	}
}
