package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clone <repo>",
		Short:   "Clone a repository into your development directory",
		GroupID: GroupRepos,
		Args:    cobra.ExactArgs(1),
		Long: `Clone a repository from its service into its place in your development
directory. Nothing happens when it is already there.`,
		Example: `  gt clone SierraSoftworks/git-tool
  gt clone gitlab.com:group/project`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			rp, err := newResolver(ctx).ExactRepo(args[0])
			if err != nil {
				return err
			}

			switch {
			case rp.Valid():
				log.FromContext(ctx).Printf("%s is already cloned\n", rp)
			case rp.Exists():
				return apperr.User(
					fmt.Sprintf("%s exists but is not a git repository.", rp.Path),
					"Move the directory away, or run 'git init' in it.")
			default:
				if err := ensureCloned(ctx, cfg, rp); err != nil {
					return err
				}
			}

			output.FromContext(ctx).Println(rp.Path)
			return nil
		},
	}

	cmd.ValidArgsFunction = completeRepos

	return cmd
}
