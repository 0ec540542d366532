package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/resolver"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/picker"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/progress"
)

// newResolver builds a resolver from the config and logger in ctx.
func newResolver(ctx context.Context) *resolver.Resolver {
	return resolver.New(config.FromContext(ctx), resolver.WithLogger(log.FromContext(ctx)))
}

// resolveRepo resolves name, or the repository containing the working
// directory when name is empty.
func resolveRepo(res *resolver.Resolver, name string) (repo.Repo, error) {
	if name == "" {
		return res.CurrentRepo()
	}
	return res.BestRepo(name)
}

// splitApp picks the app from the leading argument when it names one.
// Otherwise the default app is used and args are returned unchanged.
func splitApp(cfg *config.Config, args []string, maxRest int) (config.App, []string, error) {
	if len(args) > 0 {
		if app, ok := cfg.App(args[0]); ok {
			return app, args[1:], nil
		}
		if len(args) > maxRest {
			return config.App{}, nil, apperr.User(
				fmt.Sprintf("No app named %q is configured.", args[0]),
				"Use one of the apps listed by 'gt apps', or add it to your config.")
		}
	}

	app, err := cfg.DefaultApp()
	return app, args, err
}

// ensureCloned clones rp from its service when it is not on disk yet.
func ensureCloned(ctx context.Context, cfg *config.Config, rp repo.Repo) error {
	if rp.Exists() {
		return nil
	}

	svc, ok := cfg.Service(rp.Service)
	if !ok {
		return apperr.User(
			fmt.Sprintf("No service named %q is configured.", rp.Service),
			"Use one of the services listed by 'gt services', or add it to your config.")
	}
	if svc.GitURL == "" {
		return apperr.User(
			fmt.Sprintf("The %s service has no git_url, so %s cannot be cloned.", svc.Name, rp),
			"Set git_url for the service in your config, or create the repository with 'gt new'.")
	}
	if err := git.CheckGit(); err != nil {
		return apperr.UserWrap(err, "git is required to clone repositories.", "Install git and make sure it is on your PATH.")
	}

	url := svc.GitCloneURL(rp.Namespace, rp.Name)
	log.FromContext(ctx).Printf("Cloning %s into %s\n", url, rp.Path)
	err := progress.While(os.Stderr, picker.IsInteractive(), "Cloning "+rp.String(), func() error {
		return git.Clone(ctx, url, rp.Path)
	})
	if err != nil {
		return apperr.SystemWrap(err,
			fmt.Sprintf("Could not clone %s.", rp),
			"Check that the repository exists and that you have access to it.")
	}
	return nil
}

// pickRepo lets the user choose a repository interactively, with the filter
// prefilled to query. ok is false when the user cancelled.
func pickRepo(res *resolver.Resolver, query string) (rp repo.Repo, ok bool, err error) {
	repos, err := res.Repos()
	if err != nil {
		return repo.Repo{}, false, err
	}
	if len(repos) == 0 {
		return repo.Repo{}, false, apperr.User(
			"No repositories found.",
			"Clone one with 'gt clone <repo>' or create one with 'gt new <repo>'.")
	}

	items := make([]picker.Item, len(repos))
	for i, r := range repos {
		items[i] = picker.Item{Label: repoKey(r), Description: r.Path}
	}

	idx, err := picker.Run("Select a repository", query, items)
	if err != nil {
		return repo.Repo{}, false, interactiveErr(err)
	}
	if idx < 0 {
		return repo.Repo{}, false, nil
	}
	return repos[idx], true, nil
}

func interactiveErr(err error) error {
	if errors.Is(err, picker.ErrNotInteractive) {
		return apperr.UserWrap(err,
			"Interactive mode needs a terminal.",
			"Pass a name instead of using -i.")
	}
	return apperr.SystemWrap(err, "The interactive picker failed.", apperr.ReportBug)
}

// repoKey is the service/namespace/name form used for listing and matching.
func repoKey(r repo.Repo) string {
	return r.Service + "/" + r.FullName()
}
