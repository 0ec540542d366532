package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
	"github.com/SierraSoftworks/git-tool-sub000/internal/walker"
)

var errInvalidPattern = errors.New("invalid service pattern")

// Repos lists the repositories of every configured service that has a
// directory below the dev directory, in directory order.
//
// An unreadable dev directory or an invalid service pattern is an error.
// A service directory that cannot be read is deliberately skipped and
// logged at debug level, leaving the other services listed. ReposFor
// reports the same failure as an error.
func (r *Resolver) Repos() ([]repo.Repo, error) {
	dev, err := r.devDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dev)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.UserWrap(err,
				fmt.Sprintf("Your development directory %s does not exist.", dev),
				"Create the directory, or change directory in your config.")
		}
		return nil, apperr.UserWrap(err,
			fmt.Sprintf("Could not read your development directory %s.", dev),
			"Check that you have permission to read the directory.")
	}

	var repos []repo.Repo
	for _, entry := range entries {
		svc, ok := r.cfg.Service(entry.Name())
		if !ok || !isDir(filepath.Join(dev, entry.Name())) {
			continue
		}

		found, err := r.ReposFor(svc)
		if err != nil {
			if errors.Is(err, errInvalidPattern) {
				return nil, err
			}
			r.log.Debug("skipping service", "service", svc.Name, "error", err)
			continue
		}
		repos = append(repos, found...)
	}
	return repos, nil
}

// ReposFor lists the repositories below the service's directory. Paths that
// do not resolve to a repository are left out. A missing service directory
// has no repositories.
func (r *Resolver) ReposFor(svc config.Service) ([]repo.Repo, error) {
	if !svc.ValidPattern() {
		return nil, invalidPattern(svc)
	}

	dev, err := r.devDir()
	if err != nil {
		return nil, err
	}

	root := filepath.Join(dev, svc.Name)
	paths, err := walker.ChildDirectories(root, svc.Pattern)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.UserWrap(err,
			fmt.Sprintf("Could not read the %s service directory %s.", svc.Name, root),
			"Check that you have permission to read the directory.")
	}

	repos := make([]repo.Repo, 0, len(paths))
	for _, path := range paths {
		rp, err := r.Repo(path)
		if err != nil {
			r.log.Debug("skipping directory", "path", path, "error", err)
			continue
		}
		repos = append(repos, rp)
	}
	return repos, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
