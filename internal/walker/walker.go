// Package walker enumerates directories a fixed number of levels below a root.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Depth returns the number of '/' separated segments in pattern ("*/*" is 2).
func Depth(pattern string) int {
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return 0
	}
	return strings.Count(pattern, "/") + 1
}

// ChildDirectories returns the directories exactly Depth(pattern) levels below root.
func ChildDirectories(root, pattern string) ([]string, error) {
	return DirectoryTree(root, Depth(pattern))
}

// DirectoryTree returns the directories exactly depth levels below root,
// in lexical order. Depth 0 yields root itself.
//
// Failing to read root is an error. A subdirectory that cannot be read
// contributes nothing and the walk continues.
func DirectoryTree(root string, depth int) ([]string, error) {
	if depth == 0 {
		return []string{root}, nil
	}

	children, err := subdirectories(root)
	if err != nil {
		return nil, err
	}

	var results []string
	for _, child := range children {
		leaves, err := DirectoryTree(child, depth-1)
		if err != nil {
			continue
		}
		results = append(results, leaves...)
	}
	return results, nil
}

// subdirectories lists the immediate subdirectories of dir, following
// symlinks so that a linked checkout counts as a directory.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				dirs = append(dirs, path)
			}
		}
	}
	return dirs, nil
}
