package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/launcher"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
)

func newNewCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:     "new <repo>",
		Short:   "Create a new local repository",
		Aliases: []string{"create", "n"},
		GroupID: GroupRepos,
		Args:    cobra.ExactArgs(1),
		Long: `Create a new repository at its place in your development directory.

The repository is initialized with git and its origin remote points at the
service's git URL. Nothing is created on the hosting service itself.`,
		Example: `  gt new SierraSoftworks/demo             # default service
  gt new gitlab.com:group/project         # explicit service
  gt new --open SierraSoftworks/demo      # open it in the default app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			rp, err := newResolver(ctx).ExactRepo(args[0])
			if err != nil {
				return err
			}
			if rp.Valid() {
				return apperr.User(
					fmt.Sprintf("%s already exists at %s.", rp, rp.Path),
					fmt.Sprintf("Open it with 'gt open %s'.", rp.FullName()))
			}

			if err := git.CheckGit(); err != nil {
				return apperr.UserWrap(err, "git is required to create repositories.", "Install git and make sure it is on your PATH.")
			}
			if err := git.Init(ctx, rp.Path); err != nil {
				return apperr.SystemWrap(err, fmt.Sprintf("Could not initialize %s.", rp.Path), "Check that you can write to your development directory.")
			}

			if svc, ok := cfg.Service(rp.Service); ok && svc.GitURL != "" {
				url := svc.GitCloneURL(rp.Namespace, rp.Name)
				if err := git.SetRemote(ctx, rp.Path, "origin", url); err != nil {
					return apperr.SystemWrap(err, "Could not add the origin remote.", apperr.ReportBug)
				}
				l.Debug("set origin", "url", url)
			}

			l.Printf("Created %s\n", rp)
			out.Println(rp.Path)

			if open || cfg.Features.OpenNewRepoInDefaultApp {
				app, err := cfg.DefaultApp()
				if err != nil {
					return err
				}
				return launcher.Launch(ctx, app, rp)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the new repository in the default app")

	return cmd
}
