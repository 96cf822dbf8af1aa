package ec2

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

// NewEC2Cmd creates and returns the ec2 command
func NewEC2Cmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ec2",
		Short: "Scan EC2 instances",
		Long: `Scan EC2 instances in one region and print them as a table.

The state operation reports instances by lifecycle state; any other
operation value reports them by detailed-monitoring status. Pass
--filter all to match every state.`,
		Example: `  # All instances with their lifecycle state
  cloudscan ec2 --operation state --region us-east-1 --profile default --filter all

  # All instances with their monitoring status, sorted by instance ID
  cloudscan ec2 --operation monitoring --region us-east-1 --profile default --filter all --sort asc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEC2(opts)
		},
	}

	cmd.Flags().StringVar(&opts.operation, "operation", "", "Query to run (state or monitoring)")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region to scan")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Profile from the credentials file")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter value (the literal \"all\" matches every state)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort order for results (asc or desc)")

	_ = cmd.MarkFlagRequired("operation")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runEC2(opts *options) error {
	scanner, err := scanners.NewInstanceScanner(scanners.Options{
		Profile:         opts.profile,
		Region:          opts.region,
		Operation:       opts.operation,
		Filter:          opts.filter,
		Sort:            opts.sort,
		CredentialsFile: config.Config.CredentialsFile,
	})
	if err != nil {
		return fmt.Errorf("failed to create EC2 scanner: %w", err)
	}

	spinner := output.StartSpinner("Scanning EC2 instances...",
		!config.Config.NoProgress && config.Config.LogFormat != "json")

	var result *scanners.Result
	if opts.operation == "state" {
		result, err = scanner.InstancesByState()
	} else {
		result, err = scanner.InstancesByMonitoring()
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
