package setup

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/service/ui"
)

var ErrInterrupted = errors.New("setup interrupted")

// Step is a single screen of the wizard. Update returns nil when the step is
// complete.
type Step interface {
	Init(state *State) tea.Cmd
	Update(msg tea.Msg, state *State) (Step, tea.Cmd)
	View(state *State) string
}

// Skippable steps are not shown when Skip reports true.
type Skippable interface {
	Skip(state *State) bool
}

type model struct {
	steps    []Step
	current  int
	state    *State
	quitting bool
}

func newModel(state *State, steps []Step) model {
	m := model{steps: steps, state: state}
	m.current = m.nextVisible(0)
	return m
}

func (m model) nextVisible(from int) int {
	for i := from; i < len(m.steps); i++ {
		if s, ok := m.steps[i].(Skippable); ok && s.Skip(m.state) {
			continue
		}
		return i
	}
	return len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.current < len(m.steps) {
		return m.steps[m.current].Init(m.state)
	}
	return tea.Quit
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.current >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.current].Update(msg, m.state)
	if next != nil {
		m.steps[m.current] = next
		return m, cmd
	}

	m.current = m.nextVisible(m.current + 1)
	if m.current >= len(m.steps) {
		return m, tea.Quit
	}
	return m, m.steps[m.current].Init(m.state)
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.current >= len(m.steps) {
		return "Configuration complete!\n"
	}
	header := ui.TitleStyle.Render(fmt.Sprintf("Setting up %s", core.AppName))
	progress := ui.DescStyle.Render(fmt.Sprintf("step %d of %d", m.current+1, len(m.steps)))
	return header + "\n" + progress + "\n\n" + m.steps[m.current].View(m.state) +
		ui.DescStyle.Render("\n(press ctrl+c to quit)") + "\n"
}

func defaultSteps() []Step {
	return []Step{
		newProviderStep(),
		newAPIKeyStep(),
		newBaseURLStep(),
		newModelStep(),
		newChannelStep(),
		newTelegramTokenStep(),
		newTelegramOwnerStep(),
		newSaveStep(),
	}
}

// Run walks the user through the configuration and writes it into the
// runtime directory.
func Run(runtimePath string) (*State, error) {
	state := NewState(runtimePath)
	p := tea.NewProgram(newModel(state, defaultSteps()))
	out, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := out.(model)
	if final.quitting || final.current < len(final.steps) {
		return nil, ErrInterrupted
	}
	if s, ok := final.steps[len(final.steps)-1].(*saveStep); ok && s.err != nil {
		return nil, s.err
	}
	return final.state, nil
}
