package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/SierraSoftworks/git-tool-sub000/internal/apperr"
	"github.com/SierraSoftworks/git-tool-sub000/internal/config"
	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

// Run checks cfg, prints a report to w and optionally fixes issues.
// It returns a user error when issues remain.
func Run(ctx context.Context, w io.Writer, cfg *config.Config, fix bool) error {
	return defaultChecker.run(ctx, w, cfg, fix)
}

func (c checker) run(ctx context.Context, w io.Writer, cfg *config.Config, fix bool) error {
	report := c.check(ctx, cfg)

	printSummary(w, report)

	if len(report.Issues) == 0 {
		fmt.Fprintln(w, "\nNo issues found")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(w, report.Issues)

	remaining := len(report.Issues)
	if fix {
		fmt.Fprintln(w)
		remaining -= fixAll(w, report.Fixable())
	} else if n := len(report.Fixable()); n > 0 {
		fmt.Fprintf(w, "\nRun 'gt doctor --fix' to repair %d of them.\n", n)
	}

	if remaining == 0 {
		return nil
	}
	return apperr.User(
		fmt.Sprintf("gt doctor found %d issues.", remaining),
		"Follow the advice listed for each issue above.")
}

func printSummary(w io.Writer, report Report) {
	fmt.Fprintln(w)
	for _, line := range report.Passed {
		fmt.Fprintf(w, "  %s\n", styles.Pass(line))
	}
	for _, issue := range report.Issues {
		if issue.FixAction != FixNone {
			fmt.Fprintf(w, "  %s\n", styles.Warn(issue.Key))
		} else {
			fmt.Fprintf(w, "  %s\n", styles.Fail(issue.Key))
		}
	}
}

func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[Category][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range categories {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			fmt.Fprintf(w, "  • %s: %s\n", issue.Key, issue.Description)
			if issue.Advice != "" {
				fmt.Fprintf(w, "    %s\n", styles.MutedStyle.Render(issue.Advice))
			}
		}
	}
}
