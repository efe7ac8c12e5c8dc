// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun    bool
	AssumeYes bool
	Remote    string
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun    ExecutionFlagDefinition
	AssumeYes ExecutionFlagDefinition
	Remote    ExecutionFlagDefinition
}

// ExecutionFlags carries resolved execution flag values together with change markers.
type ExecutionFlags struct {
	DryRun       bool
	DryRunSet    bool
	AssumeYes    bool
	AssumeYesSet bool
	Remote       string
	RemoteSet    bool
}

// BindExecutionFlags attaches standardized execution flags to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	persistentFlagSet := command.PersistentFlags()

	bindToggleFlag(persistentFlagSet, definitions.DryRun, defaults.DryRun)
	bindToggleFlag(persistentFlagSet, definitions.AssumeYes, defaults.AssumeYes)
	bindStringFlag(persistentFlagSet, definitions.Remote, defaults.Remote)
}

// ResolveExecutionFlags reads execution flag values visible to the provided command or any of its ancestors.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlags, bool) {
	if command == nil {
		return ExecutionFlags{}, false
	}

	resolved := ExecutionFlags{}
	flagsFound := false

	if dryRunFlag := lookupCommandFlag(command, DryRunFlagName); dryRunFlag != nil {
		flagsFound = true
		resolved.DryRunSet = dryRunFlag.Changed
		resolved.DryRun = parseBoolFlagValue(dryRunFlag)
	}

	if assumeYesFlag := lookupCommandFlag(command, AssumeYesFlagName); assumeYesFlag != nil {
		flagsFound = true
		resolved.AssumeYesSet = assumeYesFlag.Changed
		resolved.AssumeYes = parseBoolFlagValue(assumeYesFlag)
	}

	if remoteFlag := lookupCommandFlag(command, RemoteFlagName); remoteFlag != nil {
		flagsFound = true
		resolved.RemoteSet = remoteFlag.Changed
		resolved.Remote = remoteFlag.Value.String()
	}

	return resolved, flagsFound
}

func bindToggleFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	AddToggleFlag(flagSet, nil, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}

func bindStringFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue string) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	if len(definition.Shorthand) > 0 {
		flagSet.StringP(definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return
	}

	flagSet.String(definition.Name, defaultValue, definition.Usage)
}

func lookupCommandFlag(command *cobra.Command, flagName string) *pflag.Flag {
	for currentCommand := command; currentCommand != nil; currentCommand = currentCommand.Parent() {
		if localFlag := currentCommand.Flags().Lookup(flagName); localFlag != nil {
			return localFlag
		}
		if persistentFlag := currentCommand.PersistentFlags().Lookup(flagName); persistentFlag != nil {
			return persistentFlag
		}
	}

	return nil
}

func parseBoolFlagValue(flag *pflag.Flag) bool {
	parsedValue, parseError := strconv.ParseBool(flag.Value.String())
	if parseError != nil {
		return false
	}
	return parsedValue
}
