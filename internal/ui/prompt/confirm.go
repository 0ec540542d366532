package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

// ConfirmResult is the answer to a Confirm prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type answer int

const (
	answerNone answer = iota
	answerYes
	answerNo
	answerCancel
)

// answers maps keys to their meaning. Enter takes the default, which is no.
var answers = map[string]answer{
	"y":      answerYes,
	"Y":      answerYes,
	"n":      answerNo,
	"N":      answerNo,
	"enter":  answerNo,
	"ctrl+c": answerCancel,
	"esc":    answerCancel,
	"q":      answerCancel,
}

type confirmModel struct {
	prompt string
	answer answer
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	if a, ok := answers[key.String()]; ok {
		m.answer = a
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) done() bool {
	return m.answer != answerNone
}

func (m confirmModel) render() string {
	if m.done() {
		return ""
	}
	return m.prompt + " " + styles.MutedStyle.Render("[y/N]") + " "
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m confirmModel) result() ConfirmResult {
	return ConfirmResult{
		Confirmed: m.answer == answerYes,
		Cancelled: m.answer == answerCancel,
	}
}

// Confirm asks a yes/no question on stderr. Enter answers no.
func Confirm(prompt string) (ConfirmResult, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt},
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	final, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return final.(confirmModel).result(), nil
}
