package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// IsGitRepo reports whether path is inside a git work tree.
func (g *GitInfoAdapter) IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

// WorkTreeRoot returns the top-level directory of the work tree containing path.
func (g *GitInfoAdapter) WorkTreeRoot(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// CommitHash returns the HEAD commit of the repository containing path.
func (g *GitInfoAdapter) CommitHash(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
