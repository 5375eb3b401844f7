package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/archguard/internal/adapters/outbound/gitinfo"
)

func initRepo(t *testing.T, commit bool) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if !commit {
		return dir
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[workspace]\n"), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Cargo.toml")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestGitInfo_IsGitRepo(t *testing.T) {
	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(initRepo(t, false)))
	assert.False(t, gi.IsGitRepo(t.TempDir()))
}

func TestGitInfo_WorkTreeRootFromSubdir(t *testing.T) {
	dir := initRepo(t, false)
	sub := filepath.Join(dir, "crates", "core")
	require.NoError(t, os.MkdirAll(sub, 0755))

	root, err := gitinfo.New().WorkTreeRoot(sub)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGitInfo_WorkTreeRoot_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().WorkTreeRoot(t.TempDir())
	assert.Error(t, err)
}

func TestGitInfo_CommitHash(t *testing.T) {
	hash, err := gitinfo.New().CommitHash(initRepo(t, true))
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NoCommits(t *testing.T) {
	_, err := gitinfo.New().CommitHash(initRepo(t, false))
	assert.Error(t, err)
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().CommitHash(t.TempDir())
	assert.Error(t, err)
}
