package git

import (
	"context"
	"strings"

	"github.com/SierraSoftworks/git-tool-sub000/internal/cmd"
)

// gitArgs runs git against dir with -C, leaving the process directory alone.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// gitLine runs git and returns its trimmed stdout.
func gitLine(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
