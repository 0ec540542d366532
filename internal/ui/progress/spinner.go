// Package progress shows a spinner on stderr while gt waits on git.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/SierraSoftworks/git-tool-sub000/internal/ui/styles"
)

// Spinner animates a message until Stop is called.
type Spinner struct {
	out     io.Writer
	message string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

type model struct {
	spinner spinner.Model
	message string
}

func newModel(message string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SelectedStyle
	return model{spinner: sp, message: message}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m model) render() string {
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

func (m model) View() tea.View {
	return tea.NewView(m.render())
}

// New returns a spinner that draws message on out once started.
func New(out io.Writer, message string) *Spinner {
	return &Spinner{out: out, message: message}
}

// Start begins the animation. It is a no-op if already running.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}
	s.program = tea.NewProgram(newModel(s.message),
		tea.WithoutSignalHandler(), tea.WithInput(nil), tea.WithOutput(s.out))
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(s.out, "\r\033[K")
}

// While runs fn with a spinner showing message when interactive is true.
func While(out io.Writer, interactive bool, message string, fn func() error) error {
	if !interactive {
		return fn()
	}
	s := New(out, message)
	s.Start()
	defer s.Stop()
	return fn()
}
