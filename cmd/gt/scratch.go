package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/launcher"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

func newScratchCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "scratch [app] [name]",
		Short:   "Open a scratchpad",
		Aliases: []string{"s"},
		GroupID: GroupScratch,
		Args:    cobra.MaximumNArgs(2),
		Long: `Open a scratchpad directory in an app, creating it when needed.

Without a name, this week's scratchpad (like 2024w15) is opened.`,
		Example: `  gt scratch              # this week's scratchpad, default app
  gt scratch code         # this week's scratchpad in "code"
  gt s shell 2024w10      # an older scratchpad
  gt scratch --list       # list scratchpads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			res := newResolver(ctx)

			if list {
				if len(args) > 0 {
					return apperr.User("--list does not take arguments.", "Run 'gt scratch --list' on its own.")
				}
				pads, err := res.Scratchpads()
				if err != nil {
					return err
				}
				out := output.FromContext(ctx)
				for _, pad := range pads {
					out.Println(pad.Name)
				}
				return nil
			}

			app, rest, err := splitApp(cfg, args, 1)
			if err != nil {
				return err
			}

			var pad repo.Scratchpad
			if len(rest) > 0 {
				pad, err = res.Scratchpad(rest[0])
			} else {
				pad, err = res.CurrentScratchpad()
			}
			if err != nil {
				return err
			}

			if err := pad.Ensure(); err != nil {
				return apperr.UserWrap(err,
					fmt.Sprintf("Could not create the scratchpad %s.", pad.Path),
					"Check that you can write to your scratchpad directory.")
			}
			return launcher.Launch(ctx, app, pad)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List scratchpads")

	cmd.ValidArgsFunction = completeAppThenScratchpad

	return cmd
}
