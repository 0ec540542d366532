package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/static"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

func newServicesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "services",
		Short:   "List configured services",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `List the services repositories can be hosted on. The first one is the
default for names given without a service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg.Services)
			}

			rows := make([][]string, 0, len(cfg.Services))
			for i, svc := range cfg.Services {
				pattern := svc.Pattern
				if !svc.ValidPattern() {
					pattern = styles.ErrorStyle.Render(pattern + " (invalid)")
				}
				rows = append(rows, []string{defaultMarker(i) + svc.Name, pattern, svc.Website, svc.GitURL})
			}
			out.Print(static.RenderTable([]string{"NAME", "PATTERN", "WEBSITE", "GIT URL"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newAppsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "apps",
		Short:   "List configured apps",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `List the apps "gt open" and "gt scratch" can launch. The first one is the
default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg.Apps)
			}

			rows := make([][]string, 0, len(cfg.Apps))
			for i, app := range cfg.Apps {
				command := strings.TrimSpace(app.Command + " " + strings.Join(app.Args, " "))
				rows = append(rows, []string{defaultMarker(i) + app.Name, command, strings.Join(app.Environment, " ")})
			}
			out.Print(static.RenderTable([]string{"NAME", "COMMAND", "ENVIRONMENT"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// defaultMarker flags the first entry, which is the default.
func defaultMarker(i int) string {
	if i == 0 {
		return "* "
	}
	return "  "
}
