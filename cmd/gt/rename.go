package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/picker"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/prompt"
)

func newRenameCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rename <repo> <new-name>",
		Short:   "Move a repository to a new name",
		Aliases: []string{"mv"},
		GroupID: GroupRepos,
		Args:    cobra.ExactArgs(2),
		Long: `Move a local repository to the place of a new name and point its origin
remote at the new location.

The new name is resolved relative to the old one: a bare name keeps the
namespace, namespace/name keeps the service. Only the local copy changes;
rename the repository on its service yourself.`,
		Example: `  gt rename git-tool git-tool-legacy             # same namespace
  gt rename git-tool notheotherben/git-tool       # new namespace
  gt rename -y git-tool gitlab.com:sierra/git-tool # new service, no prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			res := newResolver(ctx)

			src, err := res.BestRepo(args[0])
			if err != nil {
				return err
			}
			if !src.Exists() {
				return apperr.User(
					fmt.Sprintf("%s does not exist at %s.", src, src.Path),
					"Only repositories in your development directory can be renamed.")
			}

			id, err := src.Identifier().Resolve(args[1])
			if err != nil {
				return apperr.UserWrap(err,
					fmt.Sprintf("The new name %q is not valid.", args[1]),
					"Use name, namespace/name or service:namespace/name.")
			}
			dst, err := res.RepoFromIdentifier(id)
			if err != nil {
				return err
			}

			if dst.Path == src.Path {
				return apperr.User(
					fmt.Sprintf("%s already has that name.", src),
					"Choose a different name.")
			}
			if dst.Exists() {
				return apperr.User(
					fmt.Sprintf("Cannot rename %s: %s already exists at %s.", src, dst, dst.Path),
					"Remove or rename the existing repository first.")
			}

			if !yes && picker.IsInteractive() {
				result, err := prompt.Confirm(fmt.Sprintf("Rename %s to %s?", src, dst))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					log.FromContext(ctx).Println("Aborted")
					return nil
				}
			}

			if err := moveRepo(src, dst); err != nil {
				return err
			}
			updateOrigin(ctx, cfg, dst)

			output.FromContext(ctx).Println(dst.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.ValidArgsFunction = completeRepos

	return cmd
}

// moveRepo moves src to dst and removes namespace directories src leaves empty.
func moveRepo(src, dst repo.Repo) error {
	if err := os.MkdirAll(filepath.Dir(dst.Path), 0o755); err != nil {
		return apperr.SystemWrap(err, fmt.Sprintf("Could not create %s.", filepath.Dir(dst.Path)), "Check that you can write to your development directory.")
	}
	if err := os.Rename(src.Path, dst.Path); err != nil {
		return apperr.SystemWrap(err, fmt.Sprintf("Could not move %s to %s.", src.Path, dst.Path), "Check that no program is using the repository.")
	}

	if src.Namespace == "" {
		return nil
	}
	dir := filepath.Dir(src.Path)
	for range strings.Count(src.Namespace, "/") + 1 {
		if os.Remove(dir) != nil {
			break
		}
		dir = filepath.Dir(dir)
	}
	return nil
}

// updateOrigin points origin at dst's git URL. Failures only warn: the
// repository has already moved.
func updateOrigin(ctx context.Context, cfg *config.Config, dst repo.Repo) {
	l := log.FromContext(ctx)

	svc, ok := cfg.Service(dst.Service)
	if !ok || svc.GitURL == "" || !dst.Valid() {
		return
	}
	if err := git.CheckGit(); err != nil {
		l.Printf("Warning: origin not updated: %v\n", err)
		return
	}

	url := svc.GitCloneURL(dst.Namespace, dst.Name)
	if err := git.SetRemote(ctx, dst.Path, "origin", url); err != nil {
		l.Printf("Warning: failed to update origin: %v\n", err)
		return
	}
	l.Debug("updated origin", "url", url)
}
