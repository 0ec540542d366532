package main

import (
	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/doctor"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair your setup",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose problems with your gt setup.

Checks:
- git is installed
- the default app's command is on your PATH
- the config is valid and every service pattern can match
- the development and scratchpad directories exist
- every alias resolves to a repository location`,
		Example: `  gt doctor          # Check for issues
  gt doctor --fix    # Create missing directories`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return doctor.Run(ctx, output.FromContext(ctx).Writer(), config.FromContext(ctx), fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")

	return cmd
}
