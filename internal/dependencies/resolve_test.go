package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/dependencies"
	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/gitrepo"
	"github.com/temirov/clawgit/internal/shared"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type stubRepositoryManager struct {
	shared.GitRepositoryManager
}

func TestResolveGitExecutorPrefersExisting(testInstance *testing.T) {
	existing := stubGitExecutor{}
	resolved, resolveError := dependencies.ResolveGitExecutor(existing, zap.NewNop(), false)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)
}

func TestResolveGitExecutorBuildsShellExecutor(testInstance *testing.T) {
	for _, humanReadable := range []bool{false, true} {
		resolved, resolveError := dependencies.ResolveGitExecutor(nil, nil, humanReadable)
		require.NoError(testInstance, resolveError)
		require.IsType(testInstance, &execshell.ShellExecutor{}, resolved)
	}
}

func TestResolveRepositoryManager(testInstance *testing.T) {
	existing := &stubRepositoryManager{}
	resolved, resolveError := dependencies.ResolveRepositoryManager(existing, nil)
	require.NoError(testInstance, resolveError)
	require.Same(testInstance, existing, resolved)

	constructed, constructError := dependencies.ResolveRepositoryManager(nil, stubGitExecutor{})
	require.NoError(testInstance, constructError)
	require.IsType(testInstance, &gitrepo.RepositoryManager{}, constructed)

	_, missingExecutorError := dependencies.ResolveRepositoryManager(nil, nil)
	require.ErrorIs(testInstance, missingExecutorError, gitrepo.ErrGitExecutorNotConfigured)
}
