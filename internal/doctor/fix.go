package doctor

import (
	"fmt"
	"io"
	"os"
)

// fixAll applies fixes and returns how many succeeded.
func fixAll(w io.Writer, issues []Issue) int {
	var fixed int
	for _, issue := range issues {
		switch issue.FixAction {
		case FixCreateDir:
			if err := os.MkdirAll(issue.Path, 0o755); err != nil {
				fmt.Fprintf(w, "  ✗ Failed to create %s: %v\n", issue.Path, err)
				continue
			}
			fmt.Fprintf(w, "  ✓ Created %s\n", issue.Path)
			fixed++
		}
	}
	return fixed
}
