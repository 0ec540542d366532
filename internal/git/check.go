package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when no git binary is on PATH.
var ErrGitNotFound = errors.New("git executable not found on PATH")

// CheckGit returns ErrGitNotFound unless git can be run.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// Version reports the git version without the "git version" prefix.
func Version(ctx context.Context) (string, error) {
	line, err := gitLine(ctx, "", "--version")
	if err != nil {
		return "", fmt.Errorf("failed to get git version: %w", err)
	}
	return strings.TrimPrefix(line, "git version "), nil
}
