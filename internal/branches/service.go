package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/clawgit/internal/shared"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	currentBranchErrorTemplateConstant      = "failed to determine current branch: %w"
	listBranchesErrorTemplateConstant       = "failed to list branches: %w"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	RepositoryManager shared.GitRepositoryManager
}

// Listing is the current branch and every local branch; it is also the branches --json document.
type Listing struct {
	Current  string   `json:"current"`
	Branches []string `json:"branches"`
}

// Service reads branch listings.
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

// List returns the branch listing for repositoryPath, or shared.ErrNotRepository outside a work tree.
func (service *Service) List(executionContext context.Context, repositoryPath string) (Listing, error) {
	if !service.repositoryManager.IsRepository(executionContext, repositoryPath) {
		return Listing{}, shared.ErrNotRepository
	}

	currentBranch, branchError := service.repositoryManager.CurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		return Listing{}, fmt.Errorf(currentBranchErrorTemplateConstant, branchError)
	}

	branchNames, listError := service.repositoryManager.ListBranches(executionContext, repositoryPath)
	if listError != nil {
		return Listing{}, fmt.Errorf(listBranchesErrorTemplateConstant, listError)
	}
	if branchNames == nil {
		branchNames = []string{}
	}

	return Listing{Current: currentBranch, Branches: branchNames}, nil
}
