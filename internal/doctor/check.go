package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"slices"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/git"
	"github.com/SierraSoftworks/git-tool-sub000/internal/resolver"
)

type checker struct {
	lookPath   func(string) (string, error)
	gitVersion func(context.Context) (string, error)
}

var defaultChecker = checker{
	lookPath:   exec.LookPath,
	gitVersion: git.Version,
}

// Check runs every check against cfg.
func Check(ctx context.Context, cfg *config.Config) Report {
	return defaultChecker.check(ctx, cfg)
}

func (c checker) check(ctx context.Context, cfg *config.Config) Report {
	var r Report
	c.checkTools(ctx, cfg, &r)
	checkConfig(cfg, &r)
	checkDirectories(cfg, &r)
	checkAliases(cfg, &r)
	return r
}

func (c checker) checkTools(ctx context.Context, cfg *config.Config, r *Report) {
	if _, err := c.lookPath("git"); err != nil {
		r.add(Issue{
			Category:    CategoryTools,
			Key:         "git",
			Description: git.ErrGitNotFound.Error(),
			Advice:      "Install git and make sure it is on your PATH.",
		})
	} else if version, err := c.gitVersion(ctx); err != nil {
		r.add(Issue{
			Category:    CategoryTools,
			Key:         "git",
			Description: err.Error(),
			Advice:      "Check that 'git version' runs in your shell.",
		})
	} else {
		r.pass("git " + version)
	}

	app, err := cfg.DefaultApp()
	if err != nil {
		r.add(Issue{
			Category:    CategoryTools,
			Key:         "apps",
			Description: err.Error(),
			Advice:      apperr.Advice(err),
		})
		return
	}
	if _, err := c.lookPath(app.Command); err != nil {
		r.add(Issue{
			Category:    CategoryTools,
			Key:         app.Name,
			Description: fmt.Sprintf("default app command %q not found", app.Command),
			Advice:      fmt.Sprintf("Install %s, or change the command of the %s app in your config.", app.Command, app.Name),
		})
		return
	}
	r.pass(fmt.Sprintf("default app %s (%s)", app.Name, app.Command))
}

func checkConfig(cfg *config.Config, r *Report) {
	if err := cfg.Validate(); err != nil {
		r.add(Issue{
			Category:    CategoryConfig,
			Key:         "config",
			Description: err.Error(),
			Advice:      "Edit your config file, see 'gt config show'.",
		})
	} else {
		r.pass("config valid")
	}

	var valid int
	for _, svc := range cfg.Services {
		if svc.ValidPattern() {
			valid++
			continue
		}
		r.add(Issue{
			Category:    CategoryConfig,
			Key:         svc.Name,
			Description: fmt.Sprintf("invalid pattern %q", svc.Pattern),
			Advice:      "Patterns may only contain '*' segments separated by '/', for example \"*/*\".",
		})
	}
	if valid > 0 {
		r.pass(fmt.Sprintf("%d services", valid))
	}
}

func checkDirectories(cfg *config.Config, r *Report) {
	checkDirectory(r, "development directory", cfg.DevDirectory())
	checkDirectory(r, "scratchpad directory", cfg.ScratchDirectory())
}

func checkDirectory(r *Report, key, path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.add(Issue{
			Category:    CategoryDirectories,
			Key:         key,
			Description: fmt.Sprintf("%s does not exist", path),
			Advice:      "Run 'gt doctor --fix' to create it.",
			FixAction:   FixCreateDir,
			Path:        path,
		})
	case err != nil:
		r.add(Issue{
			Category:    CategoryDirectories,
			Key:         key,
			Description: err.Error(),
			Advice:      "Check the permissions of the directory.",
		})
	case !info.IsDir():
		r.add(Issue{
			Category:    CategoryDirectories,
			Key:         key,
			Description: fmt.Sprintf("%s is not a directory", path),
			Advice:      "Move the file away, or point your config at another directory.",
		})
	default:
		r.pass(key + " " + path)
	}
}

func checkAliases(cfg *config.Config, r *Report) {
	if len(cfg.Aliases) == 0 {
		return
	}

	res := resolver.New(cfg)
	names := make([]string, 0, len(cfg.Aliases))
	for name := range cfg.Aliases {
		names = append(names, name)
	}
	slices.Sort(names)

	var ok int
	for _, name := range names {
		if _, err := res.ExactRepo(name); err != nil {
			r.add(Issue{
				Category:    CategoryAliases,
				Key:         name,
				Description: fmt.Sprintf("%q does not resolve: %s", cfg.Aliases[name], err),
				Advice:      fmt.Sprintf("Point the alias at a repository with 'gt config alias %s <repo>'.", name),
			})
			continue
		}
		ok++
	}
	if ok > 0 {
		r.pass(fmt.Sprintf("%d aliases", ok))
	}
}
