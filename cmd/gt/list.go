package main

import (
	"iter"

	"github.com/spf13/cobra"

	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/output"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/search"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/static"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

// RepoDisplay holds repository info for display
type RepoDisplay struct {
	repo.Repo
	Branch string `json:"branch,omitempty"`
	Dirty  *bool  `json:"dirty,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		names      bool
		full       bool
		jsonOutput bool
		status     bool
	)

	cmd := &cobra.Command{
		Use:     "list [filter]",
		Short:   "List repositories",
		Aliases: []string{"ls", "ll"},
		GroupID: GroupRepos,
		Args:    cobra.MaximumNArgs(1),
		Long: `List the repositories in your development directory.

With a filter, only repositories whose service/namespace/name fuzzy matches
it are listed, best match first.`,
		Example: `  gt list                 # one service:namespace/name per line
  gt list tool            # fuzzy filter
  gt list --names         # namespace/name only
  gt list --full          # table with paths
  gt list --status        # table with branch and working tree state
  gt list --json          # output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			repos, err := newResolver(ctx).Repos()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				repos = search.BestMatchesBy(args[0], repos, repoKey)
			}

			display := make([]RepoDisplay, len(repos))
			for i, rp := range repos {
				display[i] = RepoDisplay{Repo: rp}
			}
			if status {
				paths := make([]string, len(repos))
				for i, rp := range repos {
					paths[i] = rp.Path
				}
				for i, st := range git.LoadStatuses(ctx, paths) {
					if st.Err != nil {
						log.FromContext(ctx).Debug("skipping status", "path", st.Path, "error", st.Err)
						continue
					}
					display[i].Branch = st.Branch
					display[i].Dirty = &st.Dirty
				}
			}

			switch {
			case jsonOutput:
				return out.JSON(display)
			case names:
				out.Lines(repoLines(display, repo.Repo.FullName))
			case full || status:
				out.Print(renderRepoTable(display, status))
			default:
				out.Lines(repoLines(display, repo.Repo.String))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, "Print namespace/name only")
	cmd.Flags().BoolVar(&full, "full", false, "Print a table including paths")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&status, "status", false, "Include branch and working tree state")
	cmd.MarkFlagsMutuallyExclusive("names", "full", "json")
	cmd.MarkFlagsMutuallyExclusive("names", "status")

	cmd.ValidArgsFunction = completeRepos

	return cmd
}

func repoLines(display []RepoDisplay, line func(repo.Repo) string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, d := range display {
			if !yield(line(d.Repo)) {
				return
			}
		}
	}
}

func renderRepoTable(display []RepoDisplay, status bool) string {
	headers := []string{"SERVICE", "REPOSITORY", "PATH"}
	if status {
		headers = append(headers, "BRANCH", "STATE")
	}

	rows := make([][]string, 0, len(display))
	for _, d := range display {
		row := []string{d.Service, d.FullName(), d.Path}
		if status {
			state := ""
			if d.Dirty != nil {
				state = styles.DirtyState(*d.Dirty)
			}
			row = append(row, d.Branch, state)
		}
		rows = append(rows, row)
	}
	return static.RenderTable(headers, rows)
}
