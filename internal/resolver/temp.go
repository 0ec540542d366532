package resolver

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/repo"
)

const tempAttempts = 8

// TempTarget picks an unused directory below the temp directory. The
// directory is not created; call Create on the result.
func (r *Resolver) TempTarget() (repo.Temp, error) {
	root := r.tempDir()
	if root == "" {
		return repo.Temp{}, apperr.User(
			"No temporary directory is available.",
			"Set TMPDIR to a writable directory.")
	}

	for range tempAttempts {
		name := TempName(r.now(), randomSuffix())
		path := filepath.Join(root, name)
		_, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return repo.Temp{Name: name, Path: path}, nil
		}
		if err != nil {
			return repo.Temp{}, apperr.UserWrap(err,
				fmt.Sprintf("Could not use the temporary directory %s.", root),
				"Check that you have permission to read it, or set TMPDIR to another directory.")
		}
		r.log.Debug("temporary name taken", "path", path)
	}
	return repo.Temp{}, apperr.System(
		fmt.Sprintf("Could not find an unused temporary directory name in %s.", root),
		"Try again, or clean up old gt-* directories in it.")
}

// TempName formats a temporary target name such as gt-20240412-093000-1a2b3c.
func TempName(t time.Time, suffix string) string {
	return fmt.Sprintf("gt-%s-%s", t.Format("20060102-150405"), suffix)
}

func randomSuffix() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b) // never fails
	return hex.EncodeToString(b)
}
