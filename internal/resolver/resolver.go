// Package resolver maps user input (paths, identifiers, fuzzy names) to
// repositories and scratchpads below the configured directories, and picks
// fresh temporary directories.
//
// A Resolver holds no state beyond its configuration: every call reads the
// filesystem again, so results track changes made between calls.
package resolver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/identifier"
	"github.com/SierraSoftworks/git-tool-sub000/internal/log"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/search"
)

// Config is the part of the configuration the resolver reads.
// *config.Config implements it.
type Config interface {
	DevDirectory() string
	ScratchDirectory() string
	Service(name string) (config.Service, bool)
	DefaultService() (config.Service, error)
	Alias(name string) (string, bool)
}

// Resolver resolves repositories, scratchpads and temporary targets.
type Resolver struct {
	cfg   Config
	log   *log.Logger
	now     func() time.Time
	getwd   func() (string, error)
	tempDir func() string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithClock sets the clock used to pick the current scratchpad.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithWorkingDir sets how the current directory is determined.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(r *Resolver) { r.getwd = getwd }
}

// WithTempDir sets the directory temporary targets are placed in.
func WithTempDir(dir string) Option {
	return func(r *Resolver) { r.tempDir = func() string { return dir } }
}

// New creates a Resolver over cfg.
func New(cfg Config, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:     cfg,
		log:     log.New(io.Discard, false, false),
		now:     time.Now,
		getwd:   os.Getwd,
		tempDir: os.TempDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Repo resolves an absolute path, or a path relative to the dev directory,
// to a repository. The first segment below the dev directory names the
// service. The repository does not need to exist.
func (r *Resolver) Repo(path string) (repo.Repo, error) {
	dev, err := r.devDir()
	if err != nil {
		return repo.Repo{}, err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(dev, path)
	}
	full, err := canonicalize(path)
	if err != nil {
		return repo.Repo{}, apperr.UserWrap(err,
			fmt.Sprintf("Could not resolve the path %s.", path),
			"Check that the path exists and that you have permission to read it.")
	}

	rel, ok := within(dev, full)
	if !ok {
		return repo.Repo{}, apperr.User(
			fmt.Sprintf("The path %s is not inside your development directory %s.", full, dev),
			"Repositories must live below your development directory. Check the path, or change directory in your config.")
	}

	return r.repoFromRelativePath(dev, rel, false)
}

// RepoFromIdentifier resolves service:namespace/name. An identifier without
// a scope uses the default service.
func (r *Resolver) RepoFromIdentifier(id identifier.Identifier) (repo.Repo, error) {
	dev, err := r.devDir()
	if err != nil {
		return repo.Repo{}, err
	}

	var svc config.Service
	if id.Scope == "" {
		if svc, err = r.cfg.DefaultService(); err != nil {
			return repo.Repo{}, err
		}
	} else {
		var ok bool
		if svc, ok = r.cfg.Service(id.Scope); !ok {
			return repo.Repo{}, unknownService(id.Scope)
		}
	}

	return r.repoFromRelativePath(dev, svc.Name+"/"+id.Path, false)
}

// CurrentRepo resolves the repository containing the working directory.
// Subdirectories of a repository resolve to the repository itself.
func (r *Resolver) CurrentRepo() (repo.Repo, error) {
	wd, err := r.getwd()
	if err != nil {
		return repo.Repo{}, apperr.SystemWrap(err,
			"Could not determine the current directory.",
			apperr.ReportBug)
	}

	dev, err := r.devDir()
	if err != nil {
		return repo.Repo{}, err
	}

	cur, err := canonicalize(wd)
	if err != nil {
		return repo.Repo{}, apperr.SystemWrap(err,
			fmt.Sprintf("Could not resolve the current directory %s.", wd),
			apperr.ReportBug)
	}

	var firstErr error
	for dir := cur; ; {
		if _, ok := within(dev, dir); !ok {
			break
		}
		rp, err := r.Repo(dir)
		if err == nil {
			return rp, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	desc := fmt.Sprintf("The current directory %s is not a repository.", cur)
	advice := fmt.Sprintf("Change into a repository below %s, or name the repository explicitly.", dev)
	if firstErr != nil {
		return repo.Repo{}, apperr.UserWrap(firstErr, desc, advice)
	}
	return repo.Repo{}, apperr.User(desc, advice)
}

// BestRepo finds the repository the user most likely means by name.
//
// Aliases are expanded first. A service:path identifier or a name that
// resolves structurally (service/namespace/name) wins outright. Otherwise
// local repositories are fuzzy ranked by "service/namespace/name"; with no
// match, name is treated as a new repository in the default service.
// Absolute paths are never fuzzy matched and must lie in the dev directory.
func (r *Resolver) BestRepo(name string) (repo.Repo, error) {
	name, err := r.expand(name)
	if err != nil {
		return repo.Repo{}, err
	}

	if rp, ok, err := r.direct(name); ok || err != nil {
		return rp, err
	}
	if filepath.IsAbs(name) {
		return r.Repo(name)
	}

	repos, err := r.Repos()
	if err != nil {
		return repo.Repo{}, err
	}

	matches := search.BestMatchesBy(name, repos, func(rp repo.Repo) string {
		return rp.Service + "/" + rp.FullName()
	})
	r.log.Debug("fuzzy matched repositories", "query", name, "candidates", len(repos), "matches", len(matches))

	switch len(matches) {
	case 0:
		dev, err := r.devDir()
		if err != nil {
			return repo.Repo{}, err
		}
		rp, err := r.repoFromRelativePath(dev, name, true)
		if err != nil {
			return repo.Repo{}, apperr.UserWrap(err,
				"No matching repository found.",
				"Check the name, or use a fully qualified name like github.com/namespace/name.")
		}
		return rp, nil
	case 1:
		return matches[0], nil
	}

	for _, m := range matches {
		if m.FullName() == name {
			return m, nil
		}
	}

	return repo.Repo{}, apperr.User(
		fmt.Sprintf("The name %q matches %d repositories: %s.", name, len(matches), summarize(matches, 5)),
		"Use a fully qualified name like service/namespace/name to pick one.")
}

// ExactRepo resolves name like BestRepo but without fuzzy matching: a name
// that is neither an identifier nor a path below the dev directory is taken
// as namespace/name in the default service. Use it for repositories that may
// not exist yet.
func (r *Resolver) ExactRepo(name string) (repo.Repo, error) {
	name, err := r.expand(name)
	if err != nil {
		return repo.Repo{}, err
	}

	if rp, ok, err := r.direct(name); ok || err != nil {
		return rp, err
	}
	if filepath.IsAbs(name) {
		return r.Repo(name)
	}

	dev, err := r.devDir()
	if err != nil {
		return repo.Repo{}, err
	}
	return r.repoFromRelativePath(dev, name, true)
}

// expand trims name and expands an alias, one level deep.
func (r *Resolver) expand(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.User(
			"No repository name was provided.",
			"Provide a repository name like namespace/name, or run this command inside a repository.")
	}

	if alias, ok := r.cfg.Alias(name); ok {
		r.log.Debug("expanded alias", "alias", name, "target", alias)
		name = alias
	}
	return name, nil
}

// direct resolves an identifier or a path below the dev directory.
// ok is false when name is neither, so the caller can keep looking.
func (r *Resolver) direct(name string) (rp repo.Repo, ok bool, err error) {
	if !filepath.IsAbs(name) && strings.Contains(name, ":") {
		id, err := identifier.Parse(name)
		if err != nil {
			return repo.Repo{}, true, apperr.UserWrap(err,
				fmt.Sprintf("The repository name %q is not valid.", name),
				"Use service:namespace/name, for example github.com:SierraSoftworks/git-tool.")
		}
		rp, err := r.RepoFromIdentifier(id)
		return rp, true, err
	}

	if rp, err := r.Repo(name); err == nil {
		return rp, true, nil
	}
	return repo.Repo{}, false, nil
}

// repoFromRelativePath interprets rel (slash separated, relative to dev) as
// service/namespace.../name. With fallback, a first segment that is not a
// configured service is taken as part of a name in the default service.
func (r *Resolver) repoFromRelativePath(dev, rel string, fallback bool) (repo.Repo, error) {
	var segs []string
	for seg := range strings.SplitSeq(filepath.ToSlash(rel), "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return repo.Repo{}, apperr.User(
				fmt.Sprintf("The repository path %q contains a relative segment.", rel),
				"Use a plain service/namespace/name path.")
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return repo.Repo{}, apperr.User(
			"No repository path was provided.",
			"Use a path like service/namespace/name.")
	}

	svc, ok := r.cfg.Service(segs[0])
	if !ok {
		if !fallback {
			return repo.Repo{}, unknownService(segs[0])
		}
		var err error
		if svc, err = r.cfg.DefaultService(); err != nil {
			return repo.Repo{}, err
		}
		segs = append([]string{svc.Name}, segs...)
	}

	if !svc.ValidPattern() {
		return repo.Repo{}, invalidPattern(svc)
	}

	parts := segs[1:]
	if len(parts) != svc.Depth() {
		return repo.Repo{}, apperr.User(
			fmt.Sprintf("The repository %q does not match the %s pattern %q.", strings.Join(parts, "/"), svc.Name, svc.Pattern),
			fmt.Sprintf("Repositories on %s are named like %s.", svc.Name, example(svc)))
	}

	return repo.Repo{
		Service:   svc.Name,
		Namespace: strings.Join(parts[:len(parts)-1], "/"),
		Name:      parts[len(parts)-1],
		Path:      filepath.Join(append([]string{dev, svc.Name}, parts...)...),
	}, nil
}

// devDir returns the canonical dev directory.
func (r *Resolver) devDir() (string, error) {
	dir := r.cfg.DevDirectory()
	if dir == "" {
		return "", apperr.User(
			"No development directory is configured.",
			"Set directory in your config, or set GITTOOL_DEV_DIRECTORY.")
	}
	dev, err := canonicalize(dir)
	if err != nil {
		return "", apperr.UserWrap(err,
			fmt.Sprintf("Could not resolve your development directory %s.", dir),
			"Check that the directory exists and that you have permission to read it.")
	}
	return dev, nil
}

func unknownService(name string) error {
	return apperr.User(
		fmt.Sprintf("No service named %q is configured.", name),
		"Use one of the services listed by 'gt services', or add it to your config.")
}

func invalidPattern(svc config.Service) error {
	return apperr.UserWrap(errInvalidPattern,
		fmt.Sprintf("The %s service has an invalid pattern %q.", svc.Name, svc.Pattern),
		"Patterns may only contain '*' segments separated by '/', for example \"*/*\".")
}

// example renders a sample name for svc ("namespace/name", "namespace/project/name").
func example(svc config.Service) string {
	parts := []string{"name"}
	switch d := svc.Depth(); {
	case d == 2:
		parts = []string{"namespace", "name"}
	case d > 2:
		parts = []string{"namespace"}
		for i := 2; i < d; i++ {
			parts = append(parts, "project")
		}
		parts = append(parts, "name")
	}
	return svc.Name + "/" + strings.Join(parts, "/")
}

// summarize lists up to limit repos, noting how many were left out.
func summarize(repos []repo.Repo, limit int) string {
	var names []string
	for i, rp := range repos {
		if i == limit {
			names = append(names, fmt.Sprintf("and %d more", len(repos)-limit))
			break
		}
		names = append(names, rp.Service+"/"+rp.FullName())
	}
	return strings.Join(names, ", ")
}
