package worktree

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/clawgit/internal/shared"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	currentBranchErrorTemplateConstant      = "failed to inspect branch: %w"
	workingTreeErrorTemplateConstant        = "failed to inspect working tree: %w"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	RepositoryManager shared.GitRepositoryManager
}

// Options configure a single inspection.
type Options struct {
	RepositoryPath    string
	Fetch             bool
	IncludeLastCommit bool
}

// Report is the status snapshot rendered by status and quick.
// Its JSON encoding is the status --json document.
type Report struct {
	Branch string `json:"branch"`
	shared.WorkingTreeState
	Last   *shared.CommitSummary   `json:"last"`
	Remote shared.RemoteDivergence `json:"remote"`
}

// Service gathers repository state into reports.
type Service struct {
	repositoryManager shared.GitRepositoryManager
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &Service{repositoryManager: dependencies.RepositoryManager}, nil
}

// Inspect collects the branch, working tree, optional last commit, and divergence.
// It returns shared.ErrNotRepository outside a work tree.
func (service *Service) Inspect(executionContext context.Context, options Options) (Report, error) {
	if !service.repositoryManager.IsRepository(executionContext, options.RepositoryPath) {
		return Report{}, shared.ErrNotRepository
	}

	branchName, branchError := service.repositoryManager.CurrentBranch(executionContext, options.RepositoryPath)
	if branchError != nil {
		return Report{}, fmt.Errorf(currentBranchErrorTemplateConstant, branchError)
	}

	state, stateError := service.repositoryManager.WorkingTreeState(executionContext, options.RepositoryPath)
	if stateError != nil {
		return Report{}, fmt.Errorf(workingTreeErrorTemplateConstant, stateError)
	}

	report := Report{Branch: branchName, WorkingTreeState: state}
	if options.IncludeLastCommit {
		report.Last = service.repositoryManager.LastCommit(executionContext, options.RepositoryPath)
	}
	report.Remote = service.repositoryManager.RemoteDivergence(executionContext, options.RepositoryPath, options.Fetch)

	return report, nil
}
