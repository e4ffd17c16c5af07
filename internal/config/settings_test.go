package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, "console", s.Output)
	assert.Equal(t, ":8080", s.Listen)
	assert.Equal(t, 0, s.Workers)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv("SEVPV_LOG_LEVEL", "debug")
	t.Setenv("SEVPV_WORKERS", "4")
	t.Setenv("SEVPV_ARCHIVE", "/tmp/runs.db")
	t.Setenv("SEVPV_AS_OF", "2026-01-01")

	s, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, "/tmp/runs.db", s.ArchivePath)
	assert.Equal(t, "2026-01-01", s.AsOf)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sevpv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: json\noutput: csv\nlisten: 127.0.0.1:9000\n"), 0o644))

	s, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "csv", s.Output)
	assert.Equal(t, "127.0.0.1:9000", s.Listen)
}

func TestLoadSettings_Rejects(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		v := NewViper()
		v.Set("log_level", "verbose")
		_, err := LoadSettings(v, "")
		assert.Error(t, err)
	})

	t.Run("bad log format", func(t *testing.T) {
		v := NewViper()
		v.Set("log_format", "xml")
		_, err := LoadSettings(v, "")
		assert.Error(t, err)
	})
}
