package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	// Formatter defaults
	v.SetDefault("format.indent_width", 2)
	v.SetDefault("format.sort_keys", false)
}
