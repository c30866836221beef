package config

import (
	"fmt"
)

// ValidateConfig validates the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateServer(&config.Server); err != nil {
		return err
	}
	if err := validateDatabase(config, &config.Database); err != nil {
		return err
	}
	if _, err := config.ResolveProgramID(); err != nil {
		return fmt.Errorf("invalid program_id %q: %w", config.ProgramID, err)
	}
	return nil
}

func validateServer(server *ServerConfig) error {
	if server.IP == "" {
		return fmt.Errorf("server.ip cannot be empty")
	}
	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535]", server.Port)
	}
	return nil
}

func validateDatabase(config *Config, db *DatabaseConfig) error {
	switch db.Type {
	case "pebble", "bbolt":
	default:
		return fmt.Errorf("database.type %q unsupported (supported: pebble, bbolt)", db.Type)
	}
	if !config.Standalone && db.Path == "" {
		return fmt.Errorf("database.path cannot be empty")
	}
	if db.CacheSize < 0 {
		return fmt.Errorf("database.cache_size cannot be negative")
	}
	return nil
}
