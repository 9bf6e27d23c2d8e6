package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clawgit/internal/execshell"
)

func TestMergeEnvironment(testInstance *testing.T) {
	testCases := []struct {
		name      string
		base      []string
		overrides map[string]string
		expected  []string
	}{
		{
			name:     "no_overrides",
			base:     []string{"HOME=/home/agent", "PATH=/usr/bin"},
			expected: []string{"HOME=/home/agent", "PATH=/usr/bin"},
		},
		{
			name:      "override_replaces_inherited_value",
			base:      []string{"GIT_TERMINAL_PROMPT=1", "PATH=/usr/bin", "GIT_TERMINAL_PROMPT=2"},
			overrides: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
			expected:  []string{"PATH=/usr/bin", "GIT_TERMINAL_PROMPT=0"},
		},
		{
			name:      "overrides_sorted_by_key",
			base:      []string{"PATH=/usr/bin"},
			overrides: map[string]string{"GIT_TERMINAL_PROMPT": "0", "GIT_ASKPASS": "true"},
			expected:  []string{"PATH=/usr/bin", "GIT_ASKPASS=true", "GIT_TERMINAL_PROMPT=0"},
		},
		{
			name:      "value_containing_separator",
			base:      []string{"GIT_CONFIG_PARAMETERS='a=b'"},
			overrides: map[string]string{"EXTRA": "x=y"},
			expected:  []string{"GIT_CONFIG_PARAMETERS='a=b'", "EXTRA=x=y"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, execshell.MergeEnvironment(testCase.base, testCase.overrides))
		})
	}
}
