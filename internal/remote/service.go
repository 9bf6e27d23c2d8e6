package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	repositoryManagerMissingMessageConstant     = "repository manager not configured"
	currentBranchErrorTemplateConstant          = "failed to determine current branch: %w"
	pushErrorTemplateConstant                   = "failed to push: %w"
	pullErrorTemplateConstant                   = "failed to pull: %w"
	remoteBranchTemplateConstant                = "%s/%s"
	gitPushSubcommandConstant                   = "push"
	gitPullSubcommandConstant                   = "pull"
	gitForceWithLeaseFlagConstant               = "--force-with-lease"
	gitSetUpstreamFlagConstant                  = "--set-upstream"
	gitRebaseFlagConstant                       = "--rebase"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
}

// Target describes where the current branch is pushed to or pulled from.
type Target struct {
	Branch string
	// Upstream is the tracking branch, or remote/branch when none is configured.
	Upstream    string
	RemoteName  string
	HasUpstream bool
	Divergence  shared.RemoteDivergence
}

// UpToDate reports whether a tracked branch has nothing to push.
func (target Target) UpToDate() bool {
	return target.HasUpstream && target.Divergence.Ahead == 0
}

// PushOptions configure a push.
type PushOptions struct {
	RepositoryPath string
	Target         Target
	Force          bool
}

// PullOptions configure a pull.
type PullOptions struct {
	RepositoryPath string
	Rebase         bool
}

// Service resolves remote targets and runs push and pull.
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

// ResolveTarget identifies the branch, its upstream, and, when measureDivergence is set, the fetched
// ahead/behind counts. It returns shared.ErrNotRepository outside a work tree.
func (service *Service) ResolveTarget(executionContext context.Context, repositoryPath string, remoteName string, measureDivergence bool) (Target, error) {
	if !service.repositoryManager.IsRepository(executionContext, repositoryPath) {
		return Target{}, shared.ErrNotRepository
	}

	branchName, branchError := service.repositoryManager.CurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		return Target{}, fmt.Errorf(currentBranchErrorTemplateConstant, branchError)
	}

	target := Target{Branch: branchName, RemoteName: remoteName}
	upstreamName, hasUpstream := service.repositoryManager.UpstreamBranch(executionContext, repositoryPath)
	if hasUpstream {
		target.Upstream = upstreamName
		target.HasUpstream = true
	} else {
		target.Upstream = fmt.Sprintf(remoteBranchTemplateConstant, remoteName, branchName)
	}

	if measureDivergence && hasUpstream {
		target.Divergence = service.repositoryManager.RemoteDivergence(executionContext, repositoryPath, true)
	}
	return target, nil
}

// Push pushes the branch, replacing a plain force with --force-with-lease and
// setting the upstream when the branch does not track one yet.
func (service *Service) Push(executionContext context.Context, options PushOptions) error {
	arguments := []string{gitPushSubcommandConstant}
	if options.Force {
		arguments = append(arguments, gitForceWithLeaseFlagConstant)
	}
	if !options.Target.HasUpstream {
		arguments = append(arguments, gitSetUpstreamFlagConstant, options.Target.RemoteName, options.Target.Branch)
	}

	if pushError := service.runNetworkGit(executionContext, options.RepositoryPath, arguments); pushError != nil {
		return fmt.Errorf(pushErrorTemplateConstant, pushError)
	}
	return nil
}

// Pull integrates upstream changes by merge, or by rebase when requested.
func (service *Service) Pull(executionContext context.Context, options PullOptions) error {
	arguments := []string{gitPullSubcommandConstant}
	if options.Rebase {
		arguments = append(arguments, gitRebaseFlagConstant)
	}

	if pullError := service.runNetworkGit(executionContext, options.RepositoryPath, arguments); pullError != nil {
		return fmt.Errorf(pullErrorTemplateConstant, pullError)
	}
	return nil
}

func (service *Service) runNetworkGit(executionContext context.Context, repositoryPath string, arguments []string) error {
	_, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     strings.TrimSpace(repositoryPath),
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	})
	return executionError
}
