package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	currentBranchErrorTemplateConstant          = "failed to determine current branch: %w"
	workingTreeStateErrorTemplateConstant       = "failed to read working tree status: %w"
	listBranchesErrorTemplateConstant           = "failed to list branches: %w"
	stagedFilesErrorTemplateConstant            = "failed to list staged files: %w"
	recentCommitsErrorTemplateConstant          = "failed to read commit history: %w"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	gitInsideWorkTreeOutputConstant             = "true"
	gitCommitLogFormatConstant                  = "--format=%h%x1f%s%x1f%ar"
	gitMaxCountFlagTemplateConstant             = "--max-count=%s"
	gitDetachedHeadLabelConstant                = "HEAD"
)

var (
	gitIsInsideWorkTreeArguments = []string{"rev-parse", "--is-inside-work-tree"}
	gitCurrentBranchArguments    = []string{"branch", "--show-current"}
	gitStatusArguments           = []string{"status", "--porcelain"}
	gitLastCommitArguments       = []string{"log", "-1", gitCommitLogFormatConstant}
	gitFetchArguments            = []string{"fetch", "--quiet"}
	gitDivergenceArguments       = []string{"rev-list", "--left-right", "--count", "HEAD...@{u}"}
	gitUpstreamArguments         = []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"}
	gitListBranchesArguments     = []string{"branch", "--format=%(refname:short)"}
	gitStagedFilesArguments      = []string{"diff", "--cached", "--name-only"}
)

// ErrGitExecutorNotConfigured indicates a nil executor was supplied.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrNotRepository indicates the target directory is not inside a git work tree.
var ErrNotRepository = shared.ErrNotRepository

// RepositoryManager answers repository queries with one git invocation each.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by executor.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsRepository reports whether repositoryPath lies inside a git work tree.
func (manager *RepositoryManager) IsRepository(executionContext context.Context, repositoryPath string) bool {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitIsInsideWorkTreeArguments, false)
	if queryError != nil {
		return false
	}
	return strings.TrimSpace(output) == gitInsideWorkTreeOutputConstant
}

// CurrentBranch returns the checked-out branch name, or HEAD when detached.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitCurrentBranchArguments, false)
	if queryError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, queryError)
	}
	branchName := strings.TrimSpace(output)
	if len(branchName) == 0 {
		return gitDetachedHeadLabelConstant, nil
	}
	return branchName, nil
}

// WorkingTreeState reads and classifies the porcelain status.
func (manager *RepositoryManager) WorkingTreeState(executionContext context.Context, repositoryPath string) (shared.WorkingTreeState, error) {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitStatusArguments, false)
	if queryError != nil {
		return shared.WorkingTreeState{}, fmt.Errorf(workingTreeStateErrorTemplateConstant, queryError)
	}
	return ParseWorkingTreeState(output), nil
}

// LastCommit returns the most recent commit or nil when there is none.
func (manager *RepositoryManager) LastCommit(executionContext context.Context, repositoryPath string) *shared.CommitSummary {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitLastCommitArguments, false)
	if queryError != nil {
		return nil
	}
	return ParseLastCommit(output)
}

// RemoteDivergence counts commits ahead of and behind the upstream.
// When fetch is set, remote refs are refreshed first; fetch failures are ignored so offline use still works.
func (manager *RepositoryManager) RemoteDivergence(executionContext context.Context, repositoryPath string, fetch bool) shared.RemoteDivergence {
	if fetch {
		_, _ = manager.runGit(executionContext, repositoryPath, gitFetchArguments, true)
	}

	output, queryError := manager.runGit(executionContext, repositoryPath, gitDivergenceArguments, false)
	if queryError != nil {
		return shared.RemoteDivergence{}
	}
	return ParseDivergence(output)
}

// UpstreamBranch returns the abbreviated upstream name, such as origin/main.
func (manager *RepositoryManager) UpstreamBranch(executionContext context.Context, repositoryPath string) (string, bool) {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitUpstreamArguments, false)
	if queryError != nil {
		return "", false
	}
	upstreamName := strings.TrimSpace(output)
	return upstreamName, len(upstreamName) > 0
}

// ListBranches returns local branch names in git's order.
func (manager *RepositoryManager) ListBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitListBranchesArguments, false)
	if queryError != nil {
		return nil, fmt.Errorf(listBranchesErrorTemplateConstant, queryError)
	}
	return ParseBranchList(output), nil
}

// StagedFiles returns the paths currently staged for commit.
func (manager *RepositoryManager) StagedFiles(executionContext context.Context, repositoryPath string) ([]string, error) {
	output, queryError := manager.runGit(executionContext, repositoryPath, gitStagedFilesArguments, false)
	if queryError != nil {
		return nil, fmt.Errorf(stagedFilesErrorTemplateConstant, queryError)
	}
	return ParseStagedFiles(output), nil
}

// RecentCommits returns up to count commits starting at HEAD.
func (manager *RepositoryManager) RecentCommits(executionContext context.Context, repositoryPath string, count int) ([]shared.CommitSummary, error) {
	arguments := []string{"log", fmt.Sprintf(gitMaxCountFlagTemplateConstant, strconv.Itoa(count)), gitCommitLogFormatConstant}
	output, queryError := manager.runGit(executionContext, repositoryPath, arguments, false)
	if queryError != nil {
		return nil, fmt.Errorf(recentCommitsErrorTemplateConstant, queryError)
	}
	return ParseCommitLog(output), nil
}

func (manager *RepositoryManager) runGit(executionContext context.Context, repositoryPath string, arguments []string, network bool) (string, error) {
	details := execshell.CommandDetails{
		Arguments:        append([]string{}, arguments...),
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	}
	if network {
		details.EnvironmentVariables = map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		}
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, details)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}
