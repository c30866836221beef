package config

import "github.com/spf13/viper"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.ip", "127.0.0.1")
	v.SetDefault("server.port", 5005)

	// Database defaults
	v.SetDefault("database.type", "pebble")
	v.SetDefault("database.path", "/var/lib/slopestored/db")
	v.SetDefault("database.cache_size", 16384)

	v.SetDefault("program_id", "")
	v.SetDefault("standalone", false)
	v.SetDefault("debug_logfile", "")
}
