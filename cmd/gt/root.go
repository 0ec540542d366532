package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/cmd"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupRepos   = "repos"
	GroupScratch = "scratch"
	GroupConfig  = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gt",
	Short: "Organize and open your git repositories",
	Long: `gt keeps every repository you work on in a predictable place below your
development directory: <directory>/<service>/<namespace>/<name>.

It finds repositories from short, fuzzy names, clones them on demand and
opens them in the apps you configure. Weekly scratchpads give you a place
for throwaway work.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed now, so the logger can honour them.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Default()
	}

	// The child process of "gt open" owns Ctrl+C; gt only stops starting new work.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		code := reportError(os.Stderr, err)
		cancel()
		os.Exit(code)
	}
}

// reportError prints err with its advice and returns the exit code.
// A launched app's exit code is passed through silently.
func reportError(w io.Writer, err error) int {
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintln(w, err)
	if advice := apperr.Advice(err); advice != "" {
		fmt.Fprintln(w, advice)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gt -h' for help")
	return 1
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRepos, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupScratch, Title: "Scratchpad and Temporary Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Repository commands
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newRenameCmd())

	// Scratchpad commands
	rootCmd.AddCommand(newScratchCmd())
	rootCmd.AddCommand(newTempCmd())

	// Config commands
	rootCmd.AddCommand(newServicesCmd())
	rootCmd.AddCommand(newAppsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
