package repo

import (
	"errors"
	"fmt"
	"os"
)

var errNotDir = errors.New("not a directory")

// Scratchpad is a free-form working directory, usually one per ISO week (2024w15).
type Scratchpad struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Exists reports whether the scratchpad directory exists.
func (s Scratchpad) Exists() bool {
	return isDir(s.Path)
}

// Ensure creates the scratchpad directory if it is missing.
func (s Scratchpad) Ensure() error {
	info, err := os.Stat(s.Path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("scratchpad %s: %s: %w", s.Name, s.Path, errNotDir)
		}
		return nil
	}
	if err := os.MkdirAll(s.Path, 0o755); err != nil {
		return fmt.Errorf("create scratchpad %s: %w", s.Name, err)
	}
	return nil
}

func (s Scratchpad) String() string { return s.Name }

// TargetName implements Target.
func (s Scratchpad) TargetName() string { return s.Name }

// TargetPath implements Target.
func (s Scratchpad) TargetPath() string { return s.Path }
