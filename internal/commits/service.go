package commits

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
	repositoryManagerMissingMessageConstant     = "repository manager not configured"
	commitMessageRequiredMessageConstant        = "commit message must be provided"
	stageErrorTemplateConstant                  = "failed to stage changes: %w"
	commitErrorTemplateConstant                 = "failed to commit: %w"
	pushErrorTemplateConstant                   = "failed to push: %w"
	undoErrorTemplateConstant                   = "failed to undo last commit: %w"
	logErrorTemplateConstant                    = "failed to read log: %w"
	workingTreeErrorTemplateConstant            = "failed to inspect working tree: %w"
	stagedFilesErrorTemplateConstant            = "failed to list staged files: %w"
	gitAddSubcommandConstant                    = "add"
	gitAddAllFlagConstant                       = "-A"
	gitCommitSubcommandConstant                 = "commit"
	gitCommitMessageFlagConstant                = "-m"
	gitPushSubcommandConstant                   = "push"
	gitResetSubcommandConstant                  = "reset"
	gitResetSoftFlagConstant                    = "--soft"
	gitPreviousCommitReferenceConstant          = "HEAD~1"
	gitLogSubcommandConstant                    = "log"
	gitMaxCountFlagPrefixConstant               = "--max-count="
	gitOnelineFlagConstant                      = "--oneline"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrCommitMessageRequired indicates Commit received a blank message.
var ErrCommitMessageRequired = errors.New(commitMessageRequiredMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
}

// Service runs the individual git steps of the commit, undo, and log commands.
// Commands sequence the steps and report progress between them.
type Service struct {
	executor          shared.GitExecutor
	repositoryManager shared.GitRepositoryManager
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &Service{executor: dependencies.GitExecutor, repositoryManager: dependencies.RepositoryManager}, nil
}

// EnsureRepository returns shared.ErrNotRepository when repositoryPath is outside a work tree.
func (service *Service) EnsureRepository(executionContext context.Context, repositoryPath string) error {
	if !service.repositoryManager.IsRepository(executionContext, repositoryPath) {
		return shared.ErrNotRepository
	}
	return nil
}

// NeedsStaging reports whether changes must be staged before committing: always when stageAll is set,
// otherwise only when nothing is staged yet.
func (service *Service) NeedsStaging(executionContext context.Context, repositoryPath string, stageAll bool) (bool, error) {
	if stageAll {
		return true, nil
	}
	state, stateError := service.repositoryManager.WorkingTreeState(executionContext, repositoryPath)
	if stateError != nil {
		return false, fmt.Errorf(workingTreeErrorTemplateConstant, stateError)
	}
	return len(state.Staged) == 0, nil
}

// StageAll stages every change, including deletions and untracked files.
func (service *Service) StageAll(executionContext context.Context, repositoryPath string) error {
	if _, stageError := service.runGit(executionContext, repositoryPath, false, gitAddSubcommandConstant, gitAddAllFlagConstant); stageError != nil {
		return fmt.Errorf(stageErrorTemplateConstant, stageError)
	}
	return nil
}

// ResolveMessage returns message when provided, otherwise one synthesized from the staged files.
// ErrNothingToCommit is returned when a message must be synthesized and nothing is staged.
func (service *Service) ResolveMessage(executionContext context.Context, repositoryPath string, message string) (string, error) {
	if len(strings.TrimSpace(message)) > 0 {
		return message, nil
	}
	stagedFiles, stagedError := service.repositoryManager.StagedFiles(executionContext, repositoryPath)
	if stagedError != nil {
		return "", fmt.Errorf(stagedFilesErrorTemplateConstant, stagedError)
	}
	return SynthesizeMessage(stagedFiles)
}

// Commit records the staged changes. The message is passed to git as a single argument.
func (service *Service) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return ErrCommitMessageRequired
	}
	if _, commitError := service.runGit(executionContext, repositoryPath, false, gitCommitSubcommandConstant, gitCommitMessageFlagConstant, message); commitError != nil {
		return fmt.Errorf(commitErrorTemplateConstant, commitError)
	}
	return nil
}

// Push pushes the current branch to its upstream.
func (service *Service) Push(executionContext context.Context, repositoryPath string) error {
	if _, pushError := service.runGit(executionContext, repositoryPath, true, gitPushSubcommandConstant); pushError != nil {
		return fmt.Errorf(pushErrorTemplateConstant, pushError)
	}
	return nil
}

// UndoLastCommit resets to the previous commit, keeping changes staged when soft is set and unstaged otherwise.
func (service *Service) UndoLastCommit(executionContext context.Context, repositoryPath string, soft bool) error {
	arguments := []string{gitResetSubcommandConstant}
	if soft {
		arguments = append(arguments, gitResetSoftFlagConstant)
	}
	arguments = append(arguments, gitPreviousCommitReferenceConstant)

	if _, resetError := service.runGit(executionContext, repositoryPath, false, arguments...); resetError != nil {
		return fmt.Errorf(undoErrorTemplateConstant, resetError)
	}
	return nil
}

// RecentCommits returns up to count commits starting at HEAD.
func (service *Service) RecentCommits(executionContext context.Context, repositoryPath string, count int) ([]shared.CommitSummary, error) {
	return service.repositoryManager.RecentCommits(executionContext, repositoryPath, count)
}

// OnelineLog returns git's own one-line log for the last count commits.
func (service *Service) OnelineLog(executionContext context.Context, repositoryPath string, count int) (string, error) {
	logOutput, logError := service.runGit(executionContext, repositoryPath, false, gitLogSubcommandConstant, gitMaxCountFlagPrefixConstant+strconv.Itoa(count), gitOnelineFlagConstant)
	if logError != nil {
		return "", fmt.Errorf(logErrorTemplateConstant, logError)
	}
	return strings.TrimRight(logOutput, "\r\n\t "), nil
}

func (service *Service) runGit(executionContext context.Context, repositoryPath string, network bool, arguments ...string) (string, error) {
	details := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	}
	if network {
		details.EnvironmentVariables = map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant}
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, details)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}
