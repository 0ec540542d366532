package repo

import (
	"fmt"
	"os"
)

// Temp is a throwaway working directory outside the dev directory.
type Temp struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Exists reports whether the temporary directory exists.
func (t Temp) Exists() bool {
	return isDir(t.Path)
}

// Create makes the directory. It fails if the path is already taken so a
// temporary target never reuses someone else's files.
func (t Temp) Create() error {
	if err := os.Mkdir(t.Path, 0o700); err != nil {
		return fmt.Errorf("create temporary directory %s: %w", t.Name, err)
	}
	return nil
}

// Remove deletes the directory and everything in it.
func (t Temp) Remove() error {
	if err := os.RemoveAll(t.Path); err != nil {
		return fmt.Errorf("remove temporary directory %s: %w", t.Name, err)
	}
	return nil
}

func (t Temp) String() string { return t.Name }

// TargetName implements Target.
func (t Temp) TargetName() string { return t.Name }

// TargetPath implements Target.
func (t Temp) TargetPath() string { return t.Path }
