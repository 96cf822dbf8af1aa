package profiles

import (
	"fmt"

	"cloudscan/internal/aws"
	"cloudscan/internal/config"

	"github.com/spf13/cobra"
)

// NewProfilesCmd creates and returns the profiles command
func NewProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List profiles from the credentials file",
		Long: `List the named profiles available in the credentials file.
The implicit DEFAULT section is never listed.`,
		Example: `  # List all profiles in the default credentials file
  cloudscan profiles

  # List profiles from a different credentials file
  cloudscan profiles --credentials-file /path/to/config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles()
		},
	}

	return cmd
}

func runProfiles() error {
	names, err := aws.ProfileNames(config.Config.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}
