// Package picker provides an interactive fuzzy-filtered list for choosing
// a repository, scratchpad or app.
package picker

import (
	"errors"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

// ErrNotInteractive is returned when the picker needs a terminal and there is none.
var ErrNotInteractive = errors.New("interactive selection requires a terminal")

// maxVisible is the number of items shown at once.
const maxVisible = 10

// Item is a selectable entry.
type Item struct {
	Label       string
	Description string
}

// itemSource implements fuzzy.Source for items.
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

// model is the BubbleTea model behind Run.
type model struct {
	title     string
	input     textinput.Model
	items     []Item
	filtered  []fuzzy.Match
	cursor    int
	selected  int // index into items; -1 means no selection
	done      bool
	cancelled bool
}

func newModel(title, query string, items []Item) *model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 256
	ti.SetWidth(40)
	ti.SetValue(query)
	ti.Focus()

	m := &model{
		title:    title,
		input:    ti,
		items:    items,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if len(m.filtered) == 0 {
			return m, nil
		}
		m.selected = m.filtered[m.cursor].Index
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	case "pgup", "home":
		m.cursor = 0
		return m, nil
	case "pgdown", "end":
		m.cursor = max(0, len(m.filtered)-1)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *model) render() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(cursor + highlight(item.Label, match.MatchedIndexes, i == m.cursor))
		if item.Description != "" {
			b.WriteString("  " + styles.MutedStyle.Render(item.Description))
		}
		b.WriteString("\n")
	}
	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching items") + "\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")
	return b.String()
}

func (m *model) applyFilter() {
	query := m.input.Value()
	if query == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.filtered[i] = fuzzy.Match{Str: item.Label, Index: i}
		}
	} else {
		// results are sorted by score (best first)
		m.filtered = fuzzy.FindFrom(query, itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// highlight renders label with matched characters highlighted.
func highlight(label string, matched []int, isSelected bool) string {
	base := styles.NormalStyle
	if isSelected {
		base = styles.SelectedStyle
	}
	if len(matched) == 0 {
		return base.Render(label)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	var b strings.Builder
	for i, r := range []rune(label) {
		if matchSet[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// IsInteractive reports whether stdin and stderr are both terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stderr.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run shows items with the filter prefilled to query and returns the index
// of the chosen item, or -1 if the user cancelled.
// The picker draws on stderr so stdout stays free for the result.
func Run(title, query string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}
	if !IsInteractive() {
		return -1, ErrNotInteractive
	}

	m := newModel(title, query, items)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}

	fm := finalModel.(*model)
	if fm.cancelled || !fm.done {
		return -1, nil
	}
	return fm.selected, nil
}
