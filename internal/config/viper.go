package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitConfig initializes the Viper configuration and loads it into Config
func InitConfig() error {
	// Set config name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config search paths
	viper.AddConfigPath(".") // Current directory only

	// Set environment variable prefix
	viper.SetEnvPrefix("CLOUDSCAN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults for all configuration values
	viper.SetDefault("aws.credentials_file", "config")
	viper.SetDefault("app.log_format", "text")
	viper.SetDefault("app.log_level", "INFO")
	viper.SetDefault("app.no_progress", false)

	// Try to read config file but don't error if not found
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a missing config file
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	Config.CredentialsFile = viper.GetString("aws.credentials_file")
	Config.LogFormat = viper.GetString("app.log_format")
	Config.LogLevel = viper.GetString("app.log_level")
	Config.NoProgress = viper.GetBool("app.no_progress")

	return nil
}

// SetConfigFile sets a custom config file path and reloads the configuration
func SetConfigFile(configFile string) error {
	viper.SetConfigFile(configFile)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}
