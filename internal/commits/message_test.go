package commits_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clawgit/internal/commits"
)

func TestSynthesizeMessage(testInstance *testing.T) {
	testCases := []struct {
		name            string
		stagedFiles     []string
		expectedMessage string
		expectedError   error
	}{
		{name: "no_files", stagedFiles: nil, expectedError: commits.ErrNothingToCommit},
		{name: "single_file", stagedFiles: []string{"a.js"}, expectedMessage: "update a.js"},
		{name: "two_files", stagedFiles: []string{"a.js", "b.js"}, expectedMessage: "update a.js, b.js"},
		{name: "three_files", stagedFiles: []string{"a.js", "b.js", "c.js"}, expectedMessage: "update a.js, b.js, c.js"},
		{name: "four_files", stagedFiles: []string{"a.js", "b.js", "c.js", "d.js"}, expectedMessage: "update 4 files"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			message, synthesisError := commits.SynthesizeMessage(testCase.stagedFiles)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, synthesisError, testCase.expectedError)
				require.Empty(testInstance, message)
				return
			}
			require.NoError(testInstance, synthesisError)
			require.Equal(testInstance, testCase.expectedMessage, message)
		})
	}
}
