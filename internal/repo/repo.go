// Package repo defines the entities gt resolves and launches apps in:
// repositories and scratchpads.
package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SierraSoftworks/git-tool-sub000/internal/identifier"
)

// Repo is a repository location below the dev directory.
// The path need not exist yet.
type Repo struct {
	Service   string `json:"service"`
	Namespace string `json:"namespace"` // may contain slashes
	Name      string `json:"name"`
	Path      string `json:"path"`
}

// Parse builds a Repo from a fully-qualified "service:namespace/name" string.
func Parse(fq, path string) (Repo, error) {
	id, err := identifier.Parse(fq)
	if err != nil {
		return Repo{}, err
	}
	if id.Scope == "" {
		return Repo{}, fmt.Errorf("repository %q is not fully qualified: expected service:namespace/name", fq)
	}
	if id.Namespace() == "" {
		return Repo{}, fmt.Errorf("repository %q has no namespace: expected service:namespace/name", fq)
	}
	return Repo{
		Service:   id.Scope,
		Namespace: id.Namespace(),
		Name:      id.Name(),
		Path:      path,
	}, nil
}

// FullName returns namespace/name.
func (r Repo) FullName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "/" + r.Name
}

// Identifier returns the repo as service:namespace/name.
func (r Repo) Identifier() identifier.Identifier {
	return identifier.Identifier{Scope: r.Service, Path: r.FullName()}
}

func (r Repo) String() string {
	return r.Identifier().String()
}

// WithIdentifier returns a copy of r relocated to id at path.
// An empty scope keeps the current service.
func (r Repo) WithIdentifier(id identifier.Identifier, path string) Repo {
	out := r
	if id.Scope != "" {
		out.Service = id.Scope
	}
	out.Namespace = id.Namespace()
	out.Name = id.Name()
	out.Path = path
	return out
}

// Exists reports whether the repo directory exists.
func (r Repo) Exists() bool {
	return isDir(r.Path)
}

// Valid reports whether the repo has been initialised (has a .git directory).
func (r Repo) Valid() bool {
	return isDir(filepath.Join(r.Path, ".git"))
}

// TargetName implements Target.
func (r Repo) TargetName() string { return r.String() }

// TargetPath implements Target.
func (r Repo) TargetPath() string { return r.Path }

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
