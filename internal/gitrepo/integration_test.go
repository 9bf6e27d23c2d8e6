package gitrepo_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/clawgit/internal/execshell"
	"github.com/temirov/clawgit/internal/gitrepo"
	"github.com/temirov/clawgit/internal/shared"
)

const (
	fixtureBranchNameConstant   = "main"
	fixtureRemoteNameConstant   = "origin"
	fixtureAuthorNameConstant   = "Fixture Author"
	fixtureAuthorEmailConstant  = "fixture@example.com"
	fixtureFirstSubjectConstant = "initial import"
	fixtureSecondSubject        = "add feature flag"
)

type fixtureRepository struct {
	directory  string
	repository *git.Repository
	worktree   *git.Worktree
}

func newFixtureRepository(testInstance *testing.T) *fixtureRepository {
	testInstance.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	directory := testInstance.TempDir()
	repository, initError := git.PlainInitWithOptions(directory, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(fixtureBranchNameConstant)},
	})
	require.NoError(testInstance, initError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	return &fixtureRepository{directory: directory, repository: repository, worktree: worktree}
}

func (fixture *fixtureRepository) writeFile(testInstance *testing.T, relativePath string, content string) {
	testInstance.Helper()
	absolutePath := filepath.Join(fixture.directory, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
}

func (fixture *fixtureRepository) commitFile(testInstance *testing.T, relativePath string, content string, subject string) plumbing.Hash {
	testInstance.Helper()
	fixture.writeFile(testInstance, relativePath, content)
	_, addError := fixture.worktree.Add(relativePath)
	require.NoError(testInstance, addError)

	commitHash, commitError := fixture.worktree.Commit(subject, &git.CommitOptions{
		Author: &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureAuthorEmailConstant, When: time.Now()},
	})
	require.NoError(testInstance, commitError)
	return commitHash
}

// trackRemoteAt configures main to track origin/main and points origin/main at hash.
func (fixture *fixtureRepository) trackRemoteAt(testInstance *testing.T, hash plumbing.Hash) {
	testInstance.Helper()
	_, remoteError := fixture.repository.CreateRemote(&config.RemoteConfig{
		Name: fixtureRemoteNameConstant,
		URLs: []string{filepath.Join(testInstance.TempDir(), "missing-remote.git")},
	})
	require.NoError(testInstance, remoteError)

	require.NoError(testInstance, fixture.repository.CreateBranch(&config.Branch{
		Name:   fixtureBranchNameConstant,
		Remote: fixtureRemoteNameConstant,
		Merge:  plumbing.NewBranchReferenceName(fixtureBranchNameConstant),
	}))

	remoteReference := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(fixtureRemoteNameConstant, fixtureBranchNameConstant), hash)
	require.NoError(testInstance, fixture.repository.Storer.SetReference(remoteReference))
}

func newShellRepositoryManager(testInstance *testing.T) *gitrepo.RepositoryManager {
	testInstance.Helper()
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	manager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	require.NoError(testInstance, managerError)
	return manager
}

func TestRepositoryManagerAgainstRealRepository(testInstance *testing.T) {
	fixture := newFixtureRepository(testInstance)
	manager := newShellRepositoryManager(testInstance)
	executionContext := context.Background()

	require.True(testInstance, manager.IsRepository(executionContext, fixture.directory))
	require.Nil(testInstance, manager.LastCommit(executionContext, fixture.directory))

	firstHash := fixture.commitFile(testInstance, "README.md", "# fixture\n", fixtureFirstSubjectConstant)
	fixture.trackRemoteAt(testInstance, firstHash)
	fixture.commitFile(testInstance, "feature.go", "package feature\n", fixtureSecondSubject)

	fixture.writeFile(testInstance, "README.md", "# fixture\n\nchanged\n")
	fixture.writeFile(testInstance, "notes.txt", "scratch\n")
	fixture.writeFile(testInstance, "staged.go", "package staged\n")
	_, addError := fixture.worktree.Add("staged.go")
	require.NoError(testInstance, addError)

	branchName, branchError := manager.CurrentBranch(executionContext, fixture.directory)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, fixtureBranchNameConstant, branchName)

	lastCommit := manager.LastCommit(executionContext, fixture.directory)
	require.NotNil(testInstance, lastCommit)
	require.Equal(testInstance, fixtureSecondSubject, lastCommit.Subject)
	require.NotEmpty(testInstance, lastCommit.ShortHash)

	state, stateError := manager.WorkingTreeState(executionContext, fixture.directory)
	require.NoError(testInstance, stateError)
	require.Equal(testInstance, []shared.ChangeEntry{{StatusCode: "A", Path: "staged.go"}}, state.Staged)
	require.Equal(testInstance, []shared.ChangeEntry{{StatusCode: "M", Path: "README.md"}}, state.Unstaged)
	require.Equal(testInstance, []string{"notes.txt"}, state.Untracked)

	stagedFiles, stagedError := manager.StagedFiles(executionContext, fixture.directory)
	require.NoError(testInstance, stagedError)
	require.Equal(testInstance, []string{"staged.go"}, stagedFiles)

	divergence := manager.RemoteDivergence(executionContext, fixture.directory, false)
	require.Equal(testInstance, shared.RemoteDivergence{Ahead: 1, Behind: 0}, divergence)

	upstream, configured := manager.UpstreamBranch(executionContext, fixture.directory)
	require.True(testInstance, configured)
	require.Equal(testInstance, "origin/main", upstream)

	commits, commitsError := manager.RecentCommits(executionContext, fixture.directory, 10)
	require.NoError(testInstance, commitsError)
	require.Len(testInstance, commits, 2)
	require.Equal(testInstance, fixtureFirstSubjectConstant, commits[1].Subject)

	branches, branchesError := manager.ListBranches(executionContext, fixture.directory)
	require.NoError(testInstance, branchesError)
	require.Equal(testInstance, []string{fixtureBranchNameConstant}, branches)
}

func TestRepositoryManagerOutsideRepository(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
	testInstance.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(testInstance.TempDir()))

	manager := newShellRepositoryManager(testInstance)
	require.False(testInstance, manager.IsRepository(context.Background(), testInstance.TempDir()))
}
