package testsupport

import (
	"context"
	"strings"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/shared"
)

const argumentKeySeparatorConstant = " "

// GitResponse configures the outcome of one scripted git invocation.
type GitResponse struct {
	Output string
	Error  error
}

// GitExecutorStub records git invocations and replays responses keyed by the space-joined arguments.
// Unscripted invocations succeed with empty output.
type GitExecutorStub struct {
	Responses        map[string]GitResponse
	ExecutedCommands []execshell.CommandDetails
}

// ExecuteGit records details and returns the scripted response.
func (executor *GitExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.ExecutedCommands = append(executor.ExecutedCommands, details)
	response, scripted := executor.Responses[ArgumentKey(details.Arguments...)]
	if !scripted {
		return execshell.ExecutionResult{}, nil
	}
	if response.Error != nil {
		return execshell.ExecutionResult{}, response.Error
	}
	return execshell.ExecutionResult{StandardOutput: response.Output}, nil
}

// ExecutedArguments lists the argument keys of every recorded invocation in order.
func (executor *GitExecutorStub) ExecutedArguments() []string {
	keys := make([]string, 0, len(executor.ExecutedCommands))
	for _, details := range executor.ExecutedCommands {
		keys = append(keys, ArgumentKey(details.Arguments...))
	}
	return keys
}

// ArgumentKey joins git arguments into the key used by GitExecutorStub.Responses.
func ArgumentKey(arguments ...string) string {
	return strings.Join(arguments, argumentKeySeparatorConstant)
}

// RepositoryManagerStub answers repository queries from its fields.
type RepositoryManagerStub struct {
	NotRepository      bool
	Branch             string
	BranchError        error
	State              shared.WorkingTreeState
	StateError         error
	Last               *shared.CommitSummary
	Divergence         shared.RemoteDivergence
	Upstream           string
	Branches           []string
	BranchesError      error
	Staged             []string
	StagedError        error
	Commits            []shared.CommitSummary
	CommitsError       error
	FetchRequests      []bool
	RequestedLogCounts []int
	RequestedPaths     []string
}

// IsRepository reports the configured repository presence.
func (manager *RepositoryManagerStub) IsRepository(_ context.Context, repositoryPath string) bool {
	manager.RequestedPaths = append(manager.RequestedPaths, repositoryPath)
	return !manager.NotRepository
}

// CurrentBranch returns the configured branch.
func (manager *RepositoryManagerStub) CurrentBranch(context.Context, string) (string, error) {
	return manager.Branch, manager.BranchError
}

// WorkingTreeState returns the configured working tree.
func (manager *RepositoryManagerStub) WorkingTreeState(context.Context, string) (shared.WorkingTreeState, error) {
	return manager.State, manager.StateError
}

// LastCommit returns the configured commit.
func (manager *RepositoryManagerStub) LastCommit(context.Context, string) *shared.CommitSummary {
	return manager.Last
}

// RemoteDivergence records the fetch request and returns the configured counts.
func (manager *RepositoryManagerStub) RemoteDivergence(_ context.Context, _ string, fetch bool) shared.RemoteDivergence {
	manager.FetchRequests = append(manager.FetchRequests, fetch)
	return manager.Divergence
}

// UpstreamBranch returns the configured upstream.
func (manager *RepositoryManagerStub) UpstreamBranch(context.Context, string) (string, bool) {
	return manager.Upstream, len(manager.Upstream) > 0
}

// ListBranches returns the configured branches.
func (manager *RepositoryManagerStub) ListBranches(context.Context, string) ([]string, error) {
	return manager.Branches, manager.BranchesError
}

// StagedFiles returns the configured staged paths.
func (manager *RepositoryManagerStub) StagedFiles(context.Context, string) ([]string, error) {
	return manager.Staged, manager.StagedError
}

// RecentCommits records the requested count and returns the configured commits.
func (manager *RepositoryManagerStub) RecentCommits(_ context.Context, _ string, count int) ([]shared.CommitSummary, error) {
	manager.RequestedLogCounts = append(manager.RequestedLogCounts, count)
	return manager.Commits, manager.CommitsError
}
