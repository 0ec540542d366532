package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/launcher"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
)

func newTempCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:     "temp [app]",
		Short:   "Open an app in a new temporary directory",
		Aliases: []string{"t"},
		GroupID: GroupScratch,
		Args:    cobra.MaximumNArgs(1),
		Long: `Open an app in a fresh, empty directory below your system's temp directory.

The directory is removed when the app exits, unless --keep is given; then
its path is printed.`,
		Example: `  gt temp                 # default app in a throwaway directory
  gt temp shell --keep    # keep the directory afterwards`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			app, _, err := splitApp(config.FromContext(ctx), args, 0)
			if err != nil {
				return err
			}

			tmp, err := newResolver(ctx).TempTarget()
			if err != nil {
				return err
			}
			if err := tmp.Create(); err != nil {
				return apperr.UserWrap(err,
					fmt.Sprintf("Could not create the temporary directory %s.", tmp.Path),
					"Check that you can write to your temp directory, or set TMPDIR.")
			}
			l.Debug("created temporary directory", "path", tmp.Path)

			launchErr := launcher.Launch(ctx, app, tmp)

			if keep {
				output.FromContext(ctx).Println(tmp.Path)
				return launchErr
			}
			if err := tmp.Remove(); err != nil {
				l.Printf("Warning: %v\n", err)
			}
			return launchErr
		},
	}

	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "Keep the directory after the app exits and print its path")

	cmd.ValidArgsFunction = completeApp

	return cmd
}
