package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/pda"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slopestored.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Missing file falls back to defaults.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.IP)
	require.Equal(t, 5005, cfg.Server.Port)
	require.Equal(t, "pebble", cfg.Database.Type)
	require.Equal(t, 16384, cfg.Database.CacheSize)
	require.False(t, cfg.Standalone)

	program, err := cfg.ResolveProgramID()
	require.NoError(t, err)
	require.Equal(t, pda.DefaultProgramID, program)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
standalone = true
program_id = "2222222222222222222222222222222222222222222222222222222222222222"

[server]
ip = "0.0.0.0"
port = 8080

[database]
type = "bbolt"
path = "/tmp/slopestore-test"
cache_size = 64
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.IP)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "bbolt", cfg.Database.Type)
	require.Equal(t, 64, cfg.Database.CacheSize)
	require.True(t, cfg.Standalone)

	program, err := cfg.ResolveProgramID()
	require.NoError(t, err)
	require.Equal(t, "2222222222222222222222222222222222222222222222222222222222222222",
		program.String())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad database type", "[database]\ntype = \"leveldb\"\n"},
		{"bad port", "[server]\nport = 0\n"},
		{"bad program id", "program_id = \"nothex\"\n"},
		{"missing path", "[database]\ntype = \"pebble\"\npath = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestStandaloneAllowsEmptyPath(t *testing.T) {
	path := writeConfig(t, "standalone = true\n\n[database]\ntype = \"pebble\"\npath = \"\"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.Standalone)
}
