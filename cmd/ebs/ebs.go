package ebs

import (
	"fmt"
	"os"

	"cloudscan/internal/aws/scanners"
	"cloudscan/internal/config"
	"cloudscan/internal/output"

	"github.com/spf13/cobra"
)

type options struct {
	operation string
	region    string
	profile   string
	filter    string
	sort      string
}

// NewEBSCmd creates and returns the ebs command
func NewEBSCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ebs",
		Short: "Scan EBS volumes",
		Long: `Scan EBS volumes in one region and print them as a table.

The state operation reports every volume, restricted to a single lifecycle
state when --filter is given. Any other operation value reports only
unencrypted volumes.`,
		Example: `  # Volumes that are not attached to an instance
  cloudscan ebs --operation state --region us-east-1 --profile default --filter available

  # Unencrypted volumes
  cloudscan ebs --operation encryption --region us-east-1 --profile default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEBS(opts)
		},
	}

	cmd.Flags().StringVar(&opts.operation, "operation", "", "Query to run (state or encryption)")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region to scan")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Profile from the credentials file")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Volume state to keep (exact match)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort order for results (asc or desc)")

	_ = cmd.MarkFlagRequired("operation")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runEBS(opts *options) error {
	scanner, err := scanners.NewVolumeScanner(scanners.Options{
		Profile:         opts.profile,
		Region:          opts.region,
		Operation:       opts.operation,
		Filter:          opts.filter,
		Sort:            opts.sort,
		CredentialsFile: config.Config.CredentialsFile,
	})
	if err != nil {
		return fmt.Errorf("failed to create EBS scanner: %w", err)
	}

	spinner := output.StartSpinner("Scanning EBS volumes...",
		!config.Config.NoProgress && config.Config.LogFormat != "json")

	var result *scanners.Result
	if opts.operation == "state" {
		result, err = scanner.VolumesByState()
	} else {
		result, err = scanner.VolumesByEncryption()
	}
	spinner.Stop()

	if err != nil {
		return err
	}

	if result.Empty() {
		fmt.Println(result.Message)
		return nil
	}

	return result.Table.Render(os.Stdout)
}
