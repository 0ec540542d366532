package main

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/static"
)

// RepoInfo is the detailed view of one repository.
type RepoInfo struct {
	repo.Repo
	Website string `json:"website,omitempty"`
	GitURL  string `json:"git_url,omitempty"`
	Exists  bool   `json:"exists"`
	Branch  string `json:"branch,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

func newInfoCmd() *cobra.Command {
	var (
		interactive     bool
		jsonOutput      bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "info [repo]",
		Short:   "Show details of a repository",
		Aliases: []string{"i"},
		GroupID: GroupRepos,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show where a repository lives and where it is hosted.

Without a repository, the one containing the current directory is shown.`,
		Example: `  gt info git-tool          # details of a repository
  gt info --json            # current repository as JSON
  gt info --copy git-tool   # also copy its path to the clipboard
  gt info -i                # pick the repository interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			res := newResolver(ctx)

			var rp repo.Repo
			var err error
			if interactive {
				var ok bool
				rp, ok, err = pickRepo(res, strings.Join(args, " "))
				if err != nil || !ok {
					return err
				}
			} else {
				var name string
				if len(args) > 0 {
					name = args[0]
				}
				if rp, err = resolveRepo(res, name); err != nil {
					return err
				}
			}

			info := repoInfo(ctx, config.FromContext(ctx), rp)

			if copyToClipboard {
				if err := clipboard.WriteAll(rp.Path); err != nil {
					log.FromContext(ctx).Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			if jsonOutput {
				return out.JSON(info)
			}
			out.Print(renderInfo(info))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the repository with fuzzy search")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the path to the clipboard")

	cmd.ValidArgsFunction = completeRepos

	return cmd
}

func repoInfo(ctx context.Context, cfg *config.Config, rp repo.Repo) RepoInfo {
	info := RepoInfo{Repo: rp, Exists: rp.Exists()}

	if svc, ok := cfg.Service(rp.Service); ok {
		if svc.Website != "" {
			info.Website = svc.WebsiteURL(rp.Namespace, rp.Name)
		}
		if svc.GitURL != "" {
			info.GitURL = svc.GitCloneURL(rp.Namespace, rp.Name)
		}
	}

	if info.Exists && rp.Valid() {
		if branch, err := git.CurrentBranch(ctx, rp.Path); err == nil {
			info.Branch = branch
		}
		if origin, err := git.OriginURL(ctx, rp.Path); err == nil {
			info.Origin = origin
		}
	}
	return info
}

func renderInfo(info RepoInfo) string {
	state := "not cloned"
	if info.Exists {
		state = "cloned"
	}
	return static.RenderDetails([][2]string{
		{"Repository", info.String()},
		{"Path", info.Path},
		{"State", state},
		{"Branch", info.Branch},
		{"Website", info.Website},
		{"Git URL", info.GitURL},
		{"Origin", info.Origin},
	})
}
