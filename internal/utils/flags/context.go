package flags

import "github.com/spf13/cobra"

const (
	// RepositoryFlagName exposes the shared repository path flag name.
	RepositoryFlagName = "repository"
	// RepositoryFlagUsage describes the shared repository path flag purpose.
	RepositoryFlagUsage = "Path to the Git repository to operate on"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
	// RemoteFlagName exposes the shared remote flag name.
	RemoteFlagName = "remote"
	// RemoteFlagUsage describes the shared remote flag purpose.
	RemoteFlagUsage = "Remote name to target"
)

// RepositoryFlagDefinition captures configuration for the repository path flag.
type RepositoryFlagDefinition struct {
	Name       string
	Usage      string
	Enabled    bool
	Persistent bool
}

// RepositoryFlagValues stores the repository path flag value.
type RepositoryFlagValues struct {
	Path string
}

// BindRepositoryFlag attaches the shared repository path flag to the provided command.
func BindRepositoryFlag(command *cobra.Command, defaults RepositoryFlagValues, definition RepositoryFlagDefinition) *RepositoryFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = RepositoryFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = RepositoryFlagUsage
	}

	targetSet := command.PersistentFlags()
	if !definition.Persistent {
		targetSet = command.Flags()
	}

	if targetSet.Lookup(flagName) == nil {
		targetSet.StringVar(&values.Path, flagName, values.Path, flagUsage)
	}

	if definition.Persistent {
		if command.Flags().Lookup(flagName) == nil {
			if persistentFlag := targetSet.Lookup(flagName); persistentFlag != nil {
				command.Flags().AddFlag(persistentFlag)
			}
		}
	}

	return &values
}
