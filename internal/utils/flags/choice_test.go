package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "structured",
			choices:        []string{"structured", "console"},
			description:    "Log output format.",
			expectedOutput: "`<STRUCTURED|console>` Log output format.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log output format.",
			expectedOutput: "`<structured|CONSOLE>` Log output format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "patch",
			choices:        []string{"patch", "minor", "major"},
			description:    "",
			expectedOutput: "`<PATCH|minor|major>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "minor",
			choices:        []string{"minor", "minor", "patch", "patch"},
			description:    "Version increment.",
			expectedOutput: "`<MINOR|patch>` Version increment.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "debug",
			choices:        []string{" debug ", " info "},
			description:    "Log level.",
			expectedOutput: "`<DEBUG|info>` Log level.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}
