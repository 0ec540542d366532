package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/cmd"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

// Context holds the values for placeholder substitution
type Context struct {
	Target    string
	Path      string
	Service   string
	Namespace string
	Name      string
	FullName  string
}

// ContextFor builds the substitution context for a target.
func ContextFor(t repo.Target) Context {
	ctx := Context{
		Target:   t.TargetName(),
		Path:     t.TargetPath(),
		Name:     t.TargetName(),
		FullName: t.TargetName(),
	}
	if r, ok := t.(repo.Repo); ok {
		ctx.Service = r.Service
		ctx.Namespace = r.Namespace
		ctx.Name = r.Name
		ctx.FullName = r.FullName()
	}
	return ctx
}

// SubstitutePlaceholders replaces {placeholder} with values from ctx.
// Unknown placeholders are left as they are.
func SubstitutePlaceholders(s string, ctx Context) string {
	return strings.NewReplacer(
		"{target}", ctx.Target,
		"{path}", ctx.Path,
		"{service}", ctx.Service,
		"{namespace}", ctx.Namespace,
		"{name}", ctx.Name,
		"{full-name}", ctx.FullName,
	).Replace(s)
}

// Command returns the program, arguments and extra environment that
// launching app in t runs.
func Command(app config.App, t repo.Target) (name string, args, env []string) {
	ctx := ContextFor(t)
	args = make([]string, len(app.Args))
	for i, a := range app.Args {
		args[i] = SubstitutePlaceholders(a, ctx)
	}
	env = make([]string, len(app.Environment))
	for i, e := range app.Environment {
		env[i] = SubstitutePlaceholders(e, ctx)
	}
	return app.Command, args, env
}

// Launch runs app in t with the terminal attached and waits for it to exit.
func Launch(ctx context.Context, app config.App, t repo.Target) error {
	return LaunchWith(ctx, cmd.Options{}, app, t)
}

// LaunchWith runs app in t using the streams in opts.
// opts.Dir and opts.Env are replaced by the target directory and app environment.
func LaunchWith(ctx context.Context, opts cmd.Options, app config.App, t repo.Target) error {
	if !t.Exists() {
		return apperr.User(
			fmt.Sprintf("%s does not exist at %s.", t.TargetName(), t.TargetPath()),
			"Clone or create it first, or use 'gt open' which clones missing repositories.")
	}

	name, args, env := Command(app, t)
	opts.Dir = t.TargetPath()
	opts.Env = env

	err := cmd.Interactive(ctx, opts, name, args...)
	if errors.Is(err, exec.ErrNotFound) {
		return apperr.UserWrap(err,
			fmt.Sprintf("Could not start the %s app.", app.Name),
			fmt.Sprintf("Install %q, or change the command of the %s app in your config.", app.Command, app.Name))
	}
	return err
}
