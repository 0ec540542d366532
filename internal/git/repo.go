package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Clone clones url into path, creating parent directories.
func Clone(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := runGit(ctx, "", "clone", "--recurse-submodules", url, path); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}

// Init creates path if needed and initialises a repository in it.
func Init(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := runGit(ctx, path, "init"); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	return nil
}

// SetRemote points the named remote at url, adding it if it does not exist.
func SetRemote(ctx context.Context, path, name, url string) error {
	if _, err := gitLine(ctx, path, "remote", "get-url", name); err != nil {
		if err := runGit(ctx, path, "remote", "add", name, url); err != nil {
			return fmt.Errorf("failed to add remote %s: %w", name, err)
		}
		return nil
	}
	if err := runGit(ctx, path, "remote", "set-url", name, url); err != nil {
		return fmt.Errorf("failed to set remote %s: %w", name, err)
	}
	return nil
}

// OriginURL gets the origin URL for a repository
func OriginURL(ctx context.Context, path string) (string, error) {
	url, err := gitLine(ctx, path, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin URL: %w", err)
	}
	return url, nil
}

// CurrentBranch returns the current branch name
// Returns "(detached)" for detached HEAD state
func CurrentBranch(ctx context.Context, path string) (string, error) {
	branch, err := gitLine(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %w", err)
	}
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// IsDirty returns true if the repository has uncommitted changes or untracked files
func IsDirty(ctx context.Context, path string) bool {
	status, err := gitLine(ctx, path, "status", "--porcelain")
	return err == nil && status != ""
}
