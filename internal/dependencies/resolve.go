package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/gitrepo"
	"github.com/temirov/clawgit/internal/shared"
	"github.com/temirov/clawgit/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging attaches a console observer that narrates each git invocation.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadable bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	observers := []execshell.CommandEventObserver{}
	if humanReadable {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
