package doctor

// Category groups issues by what they concern.
type Category string

const (
	// CategoryTools covers external programs gt runs.
	CategoryTools Category = "tools"
	// CategoryConfig covers the config file contents.
	CategoryConfig Category = "config"
	// CategoryDirectories covers the dev and scratchpad directories.
	CategoryDirectories Category = "directories"
	// CategoryAliases covers alias targets.
	CategoryAliases Category = "aliases"
)

var categories = []Category{CategoryTools, CategoryConfig, CategoryDirectories, CategoryAliases}

var categoryNames = map[Category]string{
	CategoryTools:       "Tools",
	CategoryConfig:      "Configuration",
	CategoryDirectories: "Directories",
	CategoryAliases:     "Aliases",
}

// FixAction names the repair --fix applies.
type FixAction string

const (
	// FixNone means the issue must be fixed by hand.
	FixNone FixAction = ""
	// FixCreateDir creates the directory at Issue.Path.
	FixCreateDir FixAction = "create_dir"
)

// Issue is a problem found by a check.
type Issue struct {
	Category    Category
	Key         string // service, app, alias or directory the issue is about
	Description string
	Advice      string
	FixAction   FixAction
	Path        string // for FixCreateDir
}

// Report is the outcome of all checks.
type Report struct {
	Passed []string // one line per successful check
	Issues []Issue
}

// Fixable returns the issues --fix can repair.
func (r Report) Fixable() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.FixAction != FixNone {
			out = append(out, issue)
		}
	}
	return out
}

func (r *Report) pass(line string) {
	r.Passed = append(r.Passed, line)
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}
