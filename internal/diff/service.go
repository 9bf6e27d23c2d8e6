package diff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	diffErrorTemplateConstant               = "failed to collect diff: %w"
	gitDiffSubcommandConstant               = "diff"
	gitCachedFlagConstant                   = "--cached"
	gitPathSeparatorConstant                = "--"
	trailingWhitespaceCutsetConstant        = " \t\r\n"
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

// Options configure a diff.
type Options struct {
	RepositoryPath string
	Staged         bool
	Paths          []string
}

// Service collects diffs.
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

// Collect returns the right-trimmed diff text, or shared.ErrNotRepository outside a work tree.
func (service *Service) Collect(executionContext context.Context, options Options) (string, error) {
	if !service.repositoryManager.IsRepository(executionContext, options.RepositoryPath) {
		return "", shared.ErrNotRepository
	}

	arguments := []string{gitDiffSubcommandConstant}
	if options.Staged {
		arguments = append(arguments, gitCachedFlagConstant)
	}
	if len(options.Paths) > 0 {
		arguments = append(arguments, gitPathSeparatorConstant)
		arguments = append(arguments, options.Paths...)
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(options.RepositoryPath),
	})
	if executionError != nil {
		return "", fmt.Errorf(diffErrorTemplateConstant, executionError)
	}
	return strings.TrimRight(executionResult.StandardOutput, trailingWhitespaceCutsetConstant), nil
}
