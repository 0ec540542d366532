package git

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Status is the working state of one repository.
type Status struct {
	Path   string `json:"-"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty"`
	Err    error  `json:"-"`
}

// LoadStatuses fetches the status of every path in parallel.
// Results are in the order of paths. A repository that cannot be read
// has Err set; the others are still loaded.
func LoadStatuses(ctx context.Context, paths []string) []Status {
	results := make([]Status, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, path := range paths {
		g.Go(func() error {
			results[i] = loadStatus(ctx, path)
			return nil // errors are recorded per repo
		})
	}

	_ = g.Wait()

	return results
}

func loadStatus(ctx context.Context, path string) Status {
	branch, err := CurrentBranch(ctx, path)
	if err != nil {
		return Status{Path: path, Err: err}
	}
	return Status{
		Path:   path,
		Branch: branch,
		Dirty:  IsDirty(ctx, path),
	}
}
