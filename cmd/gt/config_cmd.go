package main

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/static"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gt configuration.

Config file: ~/.config/git-tool/config.toml (or $GITTOOL_CONFIG)`,
		Example: `  gt config init                 # Create the default config
  gt config show                 # Show effective config
  gt config alias                # List aliases
  gt config alias gt SierraSoftworks/git-tool`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigAliasCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  gt config init      # Create config
  gt config init -f   # Overwrite existing config
  gt config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if stdout {
				output.FromContext(ctx).Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return apperr.UserWrap(err, "Could not create the config file.", "Use -f to overwrite an existing config.")
			}
			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the configuration gt is using, after defaults and environment
overrides are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				return out.JSON(cfg)
			}
			if err := toml.NewEncoder(out.Writer()).Encode(cfg); err != nil {
				return apperr.SystemWrap(err, "Could not render the config.", apperr.ReportBug)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigAliasCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "alias [name [repo]]",
		Short: "List, show, set or delete repository aliases",
		Args:  cobra.MaximumNArgs(2),
		Long: `Aliases are short names that expand to a repository before it is resolved.

With no arguments, all aliases are listed. With a name, its target is
printed. With a name and a repository, the alias is set.`,
		Example: `  gt config alias                              # list aliases
  gt config alias gt                           # show one alias
  gt config alias gt SierraSoftworks/git-tool  # set an alias
  gt config alias gt --delete                  # delete an alias`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			switch {
			case remove:
				if len(args) != 1 {
					return apperr.User("--delete needs exactly one alias name.", "Run 'gt config alias <name> --delete'.")
				}
				name := args[0]
				if _, ok := cfg.Alias(name); !ok {
					return unknownAlias(name)
				}
				if err := saveConfig(func(c *config.Config) error {
					c.DeleteAlias(name)
					return nil
				}); err != nil {
					return err
				}
				cfg.DeleteAlias(name)
				log.FromContext(ctx).Printf("Deleted alias %s\n", name)

			case len(args) == 2:
				name, target := args[0], args[1]
				rp, err := newResolver(ctx).BestRepo(target)
				if err != nil {
					return err
				}
				// aliases are stored as identifiers
				target = rp.String()
				if err := saveConfig(func(c *config.Config) error {
					c.SetAlias(name, target)
					return nil
				}); err != nil {
					return err
				}
				cfg.SetAlias(name, target)
				log.FromContext(ctx).Printf("%s -> %s\n", name, target)

			case len(args) == 1:
				target, ok := cfg.Alias(args[0])
				if !ok {
					return unknownAlias(args[0])
				}
				out.Println(target)

			default:
				names := make([]string, 0, len(cfg.Aliases))
				for name := range cfg.Aliases {
					names = append(names, name)
				}
				slices.Sort(names)

				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{name, cfg.Aliases[name]})
				}
				out.Print(static.RenderTable([]string{"ALIAS", "REPOSITORY"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&remove, "delete", "d", false, "Delete the alias")

	cmd.ValidArgsFunction = completeAliasThenRepo

	return cmd
}

// saveConfig applies fn to the config file on disk.
func saveConfig(fn func(*config.Config) error) error {
	path, err := config.Path()
	if err != nil {
		return apperr.SystemWrap(err, "Could not locate the config file.", "Set GITTOOL_CONFIG to the config file path.")
	}
	if err := config.Update(path, fn); err != nil {
		return apperr.UserWrap(err, fmt.Sprintf("Could not update %s.", path), "Check that the file is valid TOML and writable.")
	}
	return nil
}

func unknownAlias(name string) error {
	return apperr.User(
		fmt.Sprintf("No alias named %q is configured.", name),
		"Run 'gt config alias' to list aliases.")
}
