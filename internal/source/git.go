// Package source materializes remote source trees for building.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Repo identifies a remote repository to build from.
type Repo struct {
	URL string
	Ref string // branch name; empty means the remote default
	// Subdir selects a directory inside the repository as the site source.
	Subdir string
}

// Validate checks the repository reference before any network work.
func (r Repo) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("repository URL is empty")
	}
	if strings.Contains(r.Subdir, "..") {
		return fmt.Errorf("repository subdir must stay inside the checkout: %s", r.Subdir)
	}
	return nil
}

// Clone performs a shallow single-branch clone into workDir and returns the
// directory to use as the site source root.
func Clone(ctx context.Context, repo Repo, workDir string) (string, error) {
	if err := repo.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}

	slog.Debug("cloning repository", logfields.URL(repo.URL), slog.String("ref", repo.Ref))
	opts := &git.CloneOptions{URL: repo.URL, Depth: 1}
	if repo.Ref != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + repo.Ref)
		opts.SingleBranch = true
	}

	repository, err := git.PlainCloneContext(ctx, workDir, false, opts)
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", repo.URL, err)
	}
	if ref, herr := repository.Head(); herr == nil {
		slog.Info("repository cloned", logfields.URL(repo.URL), slog.String("commit", ref.Hash().String()[:8]))
	}

	root := workDir
	if repo.Subdir != "" {
		root = filepath.Join(workDir, filepath.FromSlash(repo.Subdir))
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("subdir %s not found in repository", repo.Subdir)
		}
	}
	return root, nil
}
