// Package cmd runs external programs on behalf of gt.
//
// Every command is logged through the context logger (visible with
// --verbose) and a failing command reports its stderr as the error text,
// which is far more useful to the user than "exit status 128".
//
//	if err := cmd.RunContext(ctx, repoPath, "git", "fetch"); err != nil {
//	    return fmt.Errorf("fetch: %w", err)
//	}
//
// Interactive runs stdio through to the terminal for commands the user
// watches or drives (git clone progress, shells, editors).
//
// gt shells out to git rather than linking a Go implementation so that the
// user's SSH keys, credential helpers and git config apply unchanged.
package cmd
