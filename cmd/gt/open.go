package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/launcher"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

func newOpenCmd() *cobra.Command {
	var (
		interactive bool
		noClone     bool
	)

	cmd := &cobra.Command{
		Use:     "open [app] [repo]",
		Short:   "Open a repository in an app",
		Aliases: []string{"o", "run"},
		GroupID: GroupRepos,
		Args:    cobra.MaximumNArgs(2),
		Long: `Open a repository in one of your configured apps.

The repository is found from a fuzzy name, an alias, a path or a
service:namespace/name identifier. Without a repository, the one containing
the current directory is used. Without an app, the first configured app is
used.

Repositories that are not on disk yet are cloned first.`,
		Example: `  gt open git-tool                 # open in the default app
  gt open code sierra/git-tool     # open in the "code" app
  gt o gh:SierraSoftworks/git-tool # open by identifier
  gt open -i code                  # pick the repository interactively
  gt open code                     # open the current repository`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			res := newResolver(ctx)

			app, rest, err := splitApp(cfg, args, 1)
			if err != nil {
				return err
			}

			var target repo.Repo
			if interactive {
				var ok bool
				target, ok, err = pickRepo(res, strings.Join(rest, " "))
				if err != nil || !ok {
					return err
				}
			} else {
				var name string
				if len(rest) > 0 {
					name = rest[0]
				}
				if target, err = resolveRepo(res, name); err != nil {
					return err
				}
			}

			if !noClone {
				if err := ensureCloned(ctx, cfg, target); err != nil {
					return err
				}
			}

			return launcher.Launch(ctx, app, target)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the repository with fuzzy search")
	cmd.Flags().BoolVar(&noClone, "no-clone", false, "Do not clone repositories that are missing")

	cmd.ValidArgsFunction = completeAppThenRepo

	return cmd
}
