package main

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/search"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Generate completion script",
		GroupID:   GroupConfig,
		Long:      `Generate shell completion script.`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  # Fish
  gt completion fish > ~/.config/fish/completions/gt.fish

  # Bash
  gt completion bash > ~/.local/share/bash-completion/completions/gt

  # Zsh
  gt completion zsh > ~/.zfunc/_gt
  # Then add ~/.zfunc to fpath in .zshrc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// filterMatches keeps the candidates that fuzzy match toComplete.
func filterMatches(candidates []string, toComplete string) []string {
	var out []string
	for _, c := range candidates {
		if search.Matches(c, toComplete) {
			out = append(out, c)
		}
	}
	return out
}

// repoCandidates lists local repositories as service/namespace/name.
func repoCandidates(cmd *cobra.Command) []string {
	repos, err := newResolver(cmd.Context()).Repos()
	if err != nil {
		return nil
	}
	out := make([]string, len(repos))
	for i, rp := range repos {
		out[i] = repoKey(rp)
	}
	return out
}

func appCandidates(cfg *config.Config) []string {
	out := make([]string, len(cfg.Apps))
	for i, app := range cfg.Apps {
		out[i] = app.Name
	}
	return out
}

// completeRepos completes the first argument with repository names.
func completeRepos(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterMatches(repoCandidates(cmd), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeAppThenRepo completes [app] [repo]: apps and repos first, then
// repos once an app is given.
func completeAppThenRepo(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())
	switch len(args) {
	case 0:
		candidates := slices.Concat(appCandidates(cfg), repoCandidates(cmd))
		return filterMatches(candidates, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if _, ok := cfg.App(args[0]); ok {
			return filterMatches(repoCandidates(cmd), toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeAppThenScratchpad completes [app] [name] for "gt scratch".
func completeAppThenScratchpad(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	var pads []string
	if list, err := newResolver(ctx).Scratchpads(); err == nil {
		for _, pad := range list {
			pads = append(pads, pad.Name)
		}
	}

	switch len(args) {
	case 0:
		return filterMatches(slices.Concat(appCandidates(cfg), pads), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if _, ok := cfg.App(args[0]); ok {
			return filterMatches(pads, toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeApp completes a single app name.
func completeApp(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterMatches(appCandidates(config.FromContext(cmd.Context())), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeAliasThenRepo completes "gt config alias <name> <repo>".
func completeAliasThenRepo(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())
	switch len(args) {
	case 0:
		names := make([]string, 0, len(cfg.Aliases))
		for name := range cfg.Aliases {
			names = append(names, name)
		}
		slices.Sort(names)
		return filterMatches(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return filterMatches(repoCandidates(cmd), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
