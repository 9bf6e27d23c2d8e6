package stash

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
	unknownActionMessageTemplateConstant    = "unknown stash action: %s"
	stashErrorTemplateConstant              = "failed to run stash %s: %w"
	gitStashSubcommandConstant              = "stash"
	trailingWhitespaceCutsetConstant        = " \t\r\n"
)

// Action names a stash operation.
type Action string

// Supported stash actions.
const (
	ActionSave Action = "save"
	ActionPop  Action = "pop"
	ActionList Action = "list"
	ActionDrop Action = "drop"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// UnknownActionError reports an action outside save, pop, list, and drop.
type UnknownActionError struct {
	Action string
}

// Error describes the unsupported action.
func (unknownActionError UnknownActionError) Error() string {
	return fmt.Sprintf(unknownActionMessageTemplateConstant, unknownActionError.Action)
}

// ParseAction maps a command argument to an Action. An empty argument means save.
func ParseAction(rawAction string) (Action, error) {
	switch Action(strings.TrimSpace(rawAction)) {
	case "", ActionSave:
		return ActionSave, nil
	case ActionPop:
		return ActionPop, nil
	case ActionList:
		return ActionList, nil
	case ActionDrop:
		return ActionDrop, nil
	default:
		return "", UnknownActionError{Action: rawAction}
	}
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor       shared.GitExecutor
	RepositoryManager shared.GitRepositoryManager
}

// Service runs stash operations.
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

// Run performs action and returns git's right-trimmed output.
func (service *Service) Run(executionContext context.Context, repositoryPath string, action Action) (string, error) {
	arguments := []string{gitStashSubcommandConstant}
	if action != ActionSave {
		arguments = append(arguments, string(action))
	}

	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	})
	if executionError != nil {
		return "", fmt.Errorf(stashErrorTemplateConstant, action, executionError)
	}
	return strings.TrimRight(executionResult.StandardOutput, trailingWhitespaceCutsetConstant), nil
}
