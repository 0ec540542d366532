// Package identifier parses the repository references users type on the
// command line: an optional scope (service name) and a slash separated path,
// written as "scope:namespace/name" or just "namespace/name".
package identifier

import (
	"errors"
	"iter"
	"strings"
)

// ErrEmpty is returned when an identifier has no path.
var ErrEmpty = errors.New("repository identifier cannot be empty")

// Identifier is a parsed [scope:]path reference.
type Identifier struct {
	Scope string // empty means the default service
	Path  string
}

// Parse splits s on its first ':' into scope and path.
func Parse(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, ErrEmpty
	}

	id := Identifier{Path: s}
	if scope, path, ok := strings.Cut(s, ":"); ok {
		id = Identifier{Scope: scope, Path: path}
	}
	if id.Path == "" {
		return Identifier{}, ErrEmpty
	}
	return id, nil
}

func (id Identifier) String() string {
	if id.Scope == "" {
		return id.Path
	}
	return id.Scope + ":" + id.Path
}

// Namespace returns the path without its last segment.
func (id Identifier) Namespace() string {
	if i := strings.LastIndex(id.Path, "/"); i >= 0 {
		return id.Path[:i]
	}
	return ""
}

// Name returns the last segment of the path.
func (id Identifier) Name() string {
	if i := strings.LastIndex(id.Path, "/"); i >= 0 {
		return id.Path[i+1:]
	}
	return id.Path
}

// PathSegments yields the non-empty segments of the path.
func (id Identifier) PathSegments() iter.Seq[string] {
	return func(yield func(string) bool) {
		for seg := range strings.SplitSeq(id.Path, "/") {
			if seg == "" {
				continue
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// Resolve returns a new identifier in which the trailing segments of id are
// replaced, right-aligned, by the segments of partial. "bender" against
// "gh:org/app" yields "gh:org/bender"; "team/bender" yields "gh:team/bender".
//
// A partial containing ':' is a complete identifier and is returned as parsed.
// Segments of partial beyond the length of id's path have no slot and are
// dropped.
func (id Identifier) Resolve(partial string) (Identifier, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return Identifier{}, ErrEmpty
	}
	if strings.Contains(partial, ":") {
		return Parse(partial)
	}

	segments := strings.Split(id.Path, "/")
	overrides := strings.Split(partial, "/")
	for i := 0; i < len(overrides) && i < len(segments); i++ {
		segments[len(segments)-1-i] = overrides[len(overrides)-1-i]
	}

	return Identifier{Scope: id.Scope, Path: strings.Join(segments, "/")}, nil
}
