package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration in priority order: defaults, then the TOML
// file at path (optional when path is empty), then FRIENDTECHD_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("FRIENDTECHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = path

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// Default returns the built-in configuration without touching the
// filesystem.
func Default() *Config {
	config, err := Load("")
	if err != nil {
		panic(err)
	}
	return config
}
