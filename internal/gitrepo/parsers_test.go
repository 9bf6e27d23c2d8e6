package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clawgit/internal/gitrepo"
	"github.com/temirov/clawgit/internal/shared"
)

func TestParseWorkingTreeState(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected shared.WorkingTreeState
	}{
		{
			name:  "empty_output",
			input: "",
			expected: shared.WorkingTreeState{
				Staged:    []shared.ChangeEntry{},
				Unstaged:  []shared.ChangeEntry{},
				Untracked: []string{},
			},
		},
		{
			name:  "staged_modified_untracked",
			input: "M  a.go\n M b.go\n?? c.go\n",
			expected: shared.WorkingTreeState{
				Staged:    []shared.ChangeEntry{{StatusCode: "M", Path: "a.go"}},
				Unstaged:  []shared.ChangeEntry{{StatusCode: "M", Path: "b.go"}},
				Untracked: []string{"c.go"},
			},
		},
		{
			name:  "path_in_both_groups",
			input: "MM x.go",
			expected: shared.WorkingTreeState{
				Staged:    []shared.ChangeEntry{{StatusCode: "M", Path: "x.go"}},
				Unstaged:  []shared.ChangeEntry{{StatusCode: "M", Path: "x.go"}},
				Untracked: []string{},
			},
		},
		{
			name:  "leading_space_of_first_line_preserved",
			input: " D removed.go\nA  added.go\n",
			expected: shared.WorkingTreeState{
				Staged:    []shared.ChangeEntry{{StatusCode: "A", Path: "added.go"}},
				Unstaged:  []shared.ChangeEntry{{StatusCode: "D", Path: "removed.go"}},
				Untracked: []string{},
			},
		},
		{
			name:  "short_and_blank_lines_skipped",
			input: "\nM \n\r\nR  old.go -> new.go\r\n",
			expected: shared.WorkingTreeState{
				Staged:    []shared.ChangeEntry{{StatusCode: "R", Path: "old.go -> new.go"}},
				Unstaged:  []shared.ChangeEntry{},
				Untracked: []string{},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, gitrepo.ParseWorkingTreeState(testCase.input))
		})
	}
}

func TestParseWorkingTreeStateCountsMatchLines(testInstance *testing.T) {
	state := gitrepo.ParseWorkingTreeState("A  one\n M two\n?? three\n?? four\nMD five\n")
	require.Len(testInstance, state.Staged, 2)
	require.Len(testInstance, state.Unstaged, 2)
	require.Len(testInstance, state.Untracked, 2)
	require.Equal(testInstance, 6, state.TotalCount())
}

func TestParseDivergence(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected shared.RemoteDivergence
	}{
		{name: "tab_separated", input: "3\t1\n", expected: shared.RemoteDivergence{Ahead: 3, Behind: 1}},
		{name: "zero", input: "0\t0", expected: shared.RemoteDivergence{}},
		{name: "malformed", input: "fatal: no upstream", expected: shared.RemoteDivergence{}},
		{name: "single_field", input: "4", expected: shared.RemoteDivergence{}},
		{name: "negative", input: "-1\t2", expected: shared.RemoteDivergence{}},
		{name: "empty", input: "", expected: shared.RemoteDivergence{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, gitrepo.ParseDivergence(testCase.input))
		})
	}
}

func TestParseLastCommit(testInstance *testing.T) {
	require.Nil(testInstance, gitrepo.ParseLastCommit(""))
	require.Nil(testInstance, gitrepo.ParseLastCommit("abc1234 without separators"))

	summary := gitrepo.ParseLastCommit("abc1234\x1ffix: handle a|b pipes\x1f2 hours ago\n")
	require.NotNil(testInstance, summary)
	require.Equal(testInstance, shared.CommitSummary{ShortHash: "abc1234", Subject: "fix: handle a|b pipes", RelativeTime: "2 hours ago"}, *summary)
}

func TestParseCommitLog(testInstance *testing.T) {
	commits := gitrepo.ParseCommitLog("aaa1111\x1ffirst\x1f1 minute ago\nbroken line\nbbb2222\x1fsecond\x1f3 days ago\n")
	require.Equal(testInstance, []shared.CommitSummary{
		{ShortHash: "aaa1111", Subject: "first", RelativeTime: "1 minute ago"},
		{ShortHash: "bbb2222", Subject: "second", RelativeTime: "3 days ago"},
	}, commits)
	require.Empty(testInstance, gitrepo.ParseCommitLog(""))
}

func TestParseBranchListAndStagedFiles(testInstance *testing.T) {
	require.Equal(testInstance, []string{"feature/login", "main"}, gitrepo.ParseBranchList("feature/login\nmain\n\n"))
	require.Empty(testInstance, gitrepo.ParseBranchList(""))
	require.Equal(testInstance, []string{"cmd/main.go", "README.md"}, gitrepo.ParseStagedFiles("cmd/main.go\nREADME.md\n"))
}
