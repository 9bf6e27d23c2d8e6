package shared

import (
	"context"
	"errors"

	"github.com/temirov/clawgit/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the remote used when no upstream is configured.
	OriginRemoteNameConstant     = "origin"
	notRepositoryMessageConstant = "not a git repository"
)

// ErrNotRepository indicates the working directory is not inside a git work tree.
var ErrNotRepository = errors.New(notRepositoryMessageConstant)

// GitExecutor exposes the subset of shell execution used by claw-git services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ChangeEntry is one staged or unstaged path with its single-letter porcelain status code.
type ChangeEntry struct {
	StatusCode string `json:"status"`
	Path       string `json:"file"`
}

// WorkingTreeState groups the changes reported by git status.
type WorkingTreeState struct {
	Staged    []ChangeEntry `json:"staged"`
	Unstaged  []ChangeEntry `json:"unstaged"`
	Untracked []string      `json:"untracked"`
}

// TotalCount returns the number of entries across all three groups.
func (state WorkingTreeState) TotalCount() int {
	return len(state.Staged) + len(state.Unstaged) + len(state.Untracked)
}

// IsClean reports whether there is nothing staged, modified, or untracked.
func (state WorkingTreeState) IsClean() bool {
	return state.TotalCount() == 0
}

// CommitSummary describes a single commit in the short form shown by status and log.
type CommitSummary struct {
	ShortHash    string `json:"hash"`
	Subject      string `json:"msg"`
	RelativeTime string `json:"time"`
}

// RemoteDivergence counts commits on either side of the upstream relationship.
type RemoteDivergence struct {
	Ahead  int `json:"ahead"`
	Behind int `json:"behind"`
}

// GitRepositoryManager exposes the repository queries claw-git commands build on.
// Queries documented as silenced never fail; they report absence instead.
type GitRepositoryManager interface {
	// IsRepository reports whether repositoryPath lies inside a work tree. Silenced.
	IsRepository(executionContext context.Context, repositoryPath string) bool
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	WorkingTreeState(executionContext context.Context, repositoryPath string) (WorkingTreeState, error)
	// LastCommit returns nil on an empty repository. Silenced.
	LastCommit(executionContext context.Context, repositoryPath string) *CommitSummary
	// RemoteDivergence optionally fetches first; any failure yields zero counts. Silenced.
	RemoteDivergence(executionContext context.Context, repositoryPath string, fetch bool) RemoteDivergence
	// UpstreamBranch returns the tracking branch such as origin/main. Silenced.
	UpstreamBranch(executionContext context.Context, repositoryPath string) (string, bool)
	ListBranches(executionContext context.Context, repositoryPath string) ([]string, error)
	StagedFiles(executionContext context.Context, repositoryPath string) ([]string, error)
	RecentCommits(executionContext context.Context, repositoryPath string, count int) ([]CommitSummary, error)
}
