// Package tui runs a list of named steps, showing a progress bar when attached
// to a terminal.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

// Step represents a named unit of work in the progress bar.
type Step struct {
	Name string
	Run  func() error
}

type stepDoneMsg struct{}
type stepErrMsg struct{ err error }

// Model drives a progress bar through a list of sequential steps.
type Model struct {
	steps    []Step
	current  int
	progress progress.Model
	done     bool
	err      error
}

// New creates a Model for the given steps.
func New(steps []Step) Model {
	return Model{
		steps:    steps,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.steps) == 0 {
		return tea.Quit
	}
	return m.runCurrentStep()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = fmt.Errorf("interrupted during %q", m.steps[m.current].Name)
			return m, tea.Quit
		}

	case stepDoneMsg:
		m.current++
		if m.current >= len(m.steps) {
			m.done = true
			return m, tea.Quit
		}
		return m, tea.Batch(
			m.progress.SetPercent(float64(m.current)/float64(len(m.steps))),
			m.runCurrentStep(),
		)

	case stepErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("  Error: %v\n", m.err)
	}
	if m.done || len(m.steps) == 0 {
		return fmt.Sprintf("  [%d/%d] Done.\n", len(m.steps), len(m.steps))
	}
	return fmt.Sprintf("  [%d/%d] %s\n  %s\n", m.current+1, len(m.steps), m.steps[m.current].Name, m.progress.View())
}

func (m Model) runCurrentStep() tea.Cmd {
	step := m.steps[m.current]
	return func() tea.Msg {
		if err := step.Run(); err != nil {
			return stepErrMsg{err: err}
		}
		return stepDoneMsg{}
	}
}

// Err returns any error that occurred during step execution.
func (m Model) Err() error {
	return m.err
}

// Interactive reports whether w is a terminal.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run executes the steps in order and stops at the first error. With
// showProgress the steps run under a bubbletea progress bar on out.
func Run(steps []Step, out io.Writer, showProgress bool) error {
	if !showProgress {
		for _, s := range steps {
			klog.V(2).Infof("step: %s", s.Name)
			if err := s.Run(); err != nil {
				return err
			}
		}
		return nil
	}

	p := tea.NewProgram(New(steps), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI: %w", err)
	}
	if fm, ok := finalModel.(Model); ok {
		return fm.Err()
	}
	return nil
}
