package config

import (
	"path/filepath"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
)

// Config represents the complete slopestored configuration
type Config struct {
	// Server section
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// Database section
	Database DatabaseConfig `toml:"database" mapstructure:"database"`

	// ProgramID is the hex-encoded program identity used for address
	// derivation. Empty selects the built-in default.
	ProgramID string `toml:"program_id" mapstructure:"program_id"`

	// Standalone runs the daemon with an in-memory ledger, nothing on disk
	Standalone bool `toml:"standalone" mapstructure:"standalone"`

	DebugLogfile string `toml:"debug_logfile" mapstructure:"debug_logfile"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the HTTP/websocket listener settings
type ServerConfig struct {
	IP   string `toml:"ip" mapstructure:"ip"`
	Port int    `toml:"port" mapstructure:"port"`
}

// DatabaseConfig selects and parameterizes the key-value backend
type DatabaseConfig struct {
	// Type is the backend: "pebble" or "bbolt"
	Type string `toml:"type" mapstructure:"type"`

	// Path is the directory holding the database files
	Path string `toml:"path" mapstructure:"path"`

	// CacheSize is the ledger read-cache entry count (0 = default)
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return "slopestored.toml"
}

// ConfigPathFromDir returns the configuration path for a directory
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, "slopestored.toml")
}

// GetConfigPath returns the path the configuration was loaded from
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ResolveProgramID parses the configured program identity, falling back to
// the built-in default when unset.
func (c *Config) ResolveProgramID() (types.Address, error) {
	if c.ProgramID == "" {
		return pda.DefaultProgramID, nil
	}
	return types.ParseAddress(c.ProgramID)
}
