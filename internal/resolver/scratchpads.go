package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

// Scratchpads lists the scratchpads in the scratch directory by name.
// A missing scratch directory has no scratchpads.
func (r *Resolver) Scratchpads() ([]repo.Scratchpad, error) {
	dir := r.cfg.ScratchDirectory()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.UserWrap(err,
			fmt.Sprintf("Could not read your scratchpad directory %s.", dir),
			"Check that you have permission to read the directory, or change scratchpads in your config.")
	}

	var pads []repo.Scratchpad
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isDir(path) {
			continue
		}
		pads = append(pads, repo.Scratchpad{Name: entry.Name(), Path: path})
	}
	return pads, nil
}

// Scratchpad returns the named scratchpad, which need not exist.
func (r *Resolver) Scratchpad(name string) (repo.Scratchpad, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return repo.Scratchpad{}, apperr.User(
			fmt.Sprintf("%q is not a valid scratchpad name.", name),
			"Scratchpad names are a single directory name, like 2024w15.")
	}
	return repo.Scratchpad{
		Name: name,
		Path: filepath.Join(r.cfg.ScratchDirectory(), name),
	}, nil
}

// CurrentScratchpad returns this week's scratchpad, named <ISO year>w<ISO week>.
func (r *Resolver) CurrentScratchpad() (repo.Scratchpad, error) {
	return r.Scratchpad(WeekName(r.now()))
}

// WeekName formats t as an ISO week bucket such as 2024w05.
func WeekName(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%dw%02d", year, week)
}
