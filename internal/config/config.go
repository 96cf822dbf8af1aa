package config

// GlobalConfig holds the global configuration for the application.
// Profile and region carry no config defaults: the scan commands require
// them on the command line.
type GlobalConfig struct {
	// CredentialsFile is the path to the INI credentials file
	CredentialsFile string

	// LogFormat is the format for logging (text or json)
	LogFormat string

	// LogLevel is the logging level
	LogLevel string

	// NoProgress disables the scan progress spinner
	NoProgress bool
}

// Config is the global configuration instance
var Config = &GlobalConfig{
	CredentialsFile: "config",
	LogFormat:       "text",
	LogLevel:        "INFO",
}
