package cmd

import (
	"strings"

	"cloudscan/cmd/ebs"
	"cloudscan/cmd/ec2"
	"cloudscan/cmd/profiles"
	"cloudscan/cmd/version"
	"cloudscan/internal/config"
	"cloudscan/internal/logging"

	"github.com/spf13/cobra"
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	var configFile string

	// Initialize config
	if err := config.InitConfig(); err != nil {
		return err
	}

	rootCmd := &cobra.Command{
		Use:   "cloudscan",
		Short: "CloudScan - EC2 and EBS inventory scanner",
		Long: `CloudScan is a command-line tool for inspecting EC2 instances and EBS volumes.
It queries one region under one credentials profile and prints the matching
resources as a table.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Set config file if specified
			if configFile != "" {
				if err := config.SetConfigFile(configFile); err != nil {
					logging.Warn("Failed to load config file", map[string]interface{}{
						"path":  configFile,
						"error": err.Error(),
					})
				}
			}

			// Configure logging based on flags
			logFormat := logging.Text
			if config.Config.LogFormat == "json" {
				logFormat = logging.JSON
			}

			var level logging.Level
			switch strings.ToUpper(config.Config.LogLevel) {
			case "DEBUG":
				level = logging.DEBUG
			case "INFO":
				level = logging.INFO
			case "WARN":
				level = logging.WARN
			case "ERROR":
				level = logging.ERROR
			default:
				level = logging.INFO
			}

			logging.Configure(logging.LogConfig{
				Level:  level,
				Format: logFormat,
			})
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&config.Config.CredentialsFile, "credentials-file", config.Config.CredentialsFile, "Path to the AWS credentials file")
	rootCmd.PersistentFlags().StringVar(&config.Config.LogFormat, "log-format", config.Config.LogFormat, "Log output format (text or json)")
	rootCmd.PersistentFlags().StringVar(&config.Config.LogLevel, "log-level", config.Config.LogLevel,
		"Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().BoolVar(&config.Config.NoProgress, "no-progress", config.Config.NoProgress, "Disable the progress spinner")

	// Add commands
	rootCmd.AddCommand(ec2.NewEC2Cmd())
	rootCmd.AddCommand(ebs.NewEBSCmd())
	rootCmd.AddCommand(profiles.NewProfilesCmd())
	rootCmd.AddCommand(version.NewVersionCmd())

	return rootCmd.Execute()
}
