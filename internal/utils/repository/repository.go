// Package repoutils resolves the repository path targeted by a command invocation.
package repoutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	flagutils "github.com/temirov/gflow/internal/utils/flags"
	pathutils "github.com/temirov/gflow/internal/utils/path"
)

const workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"

// Resolve determines the repository path for a command from the repository flag, configuration, and working directory.
func Resolve(command *cobra.Command, configuredPath string) (string, error) {
	resolver := pathutils.NewRepositoryPathResolver()

	if flagPath, flagPathChanged := repositoryFlagValue(command); flagPathChanged {
		if resolvedPath := resolver.Resolve(flagPath); len(resolvedPath) > 0 {
			return resolvedPath, nil
		}
	}

	if resolvedPath := resolver.Resolve(configuredPath); len(resolvedPath) > 0 {
		return resolvedPath, nil
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}

	return workingDirectory, nil
}

func repositoryFlagValue(command *cobra.Command) (string, bool) {
	for currentCommand := command; currentCommand != nil; currentCommand = currentCommand.Parent() {
		flagSets := []*pflag.FlagSet{currentCommand.Flags(), currentCommand.PersistentFlags()}
		for _, flagSet := range flagSets {
			repositoryFlag := flagSet.Lookup(flagutils.RepositoryFlagName)
			if repositoryFlag == nil {
				continue
			}
			if !repositoryFlag.Changed {
				return "", false
			}
			return strings.TrimSpace(repositoryFlag.Value.String()), true
		}
	}

	return "", false
}
