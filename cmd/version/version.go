package version

import (
	"fmt"

	"cloudscan/internal/version"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long: `Print the version information for CloudScan CLI.
This includes the version number and, when built with them, the git commit
hash and build time.`,
		Example: `  # Full version information
  cloudscan version

  # Just the version number, for scripting
  cloudscan version --short`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version.ShortString())
				return
			}
			fmt.Printf("CloudScan %s\n", version.String())
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
