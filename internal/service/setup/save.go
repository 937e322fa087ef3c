package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/internal/service/ui"
	"github.com/sandevgo/finadvisor/pkg/env"
)

type saveDoneMsg struct{ err error }

// saveStep writes .env and the default SYSTEM.md into the runtime directory.
type saveStep struct {
	done bool
	err  error
	path string
}

func newSaveStep() Step {
	return &saveStep{}
}

func (s *saveStep) Init(state *State) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: Save(state)}
	}
}

func (s *saveStep) Update(msg tea.Msg, state *State) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case saveDoneMsg:
		s.done = true
		s.err = msg.err
		s.path = EnvPath(state.App.RuntimePath)
		if msg.err == nil {
			return nil, nil
		}
	case tea.KeyMsg:
		if s.done {
			return nil, nil
		}
	}
	return s, nil
}

func (s *saveStep) View(state *State) string {
	if s.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n"
	}
	if s.done {
		return "Configuration saved to " + s.path + "\n"
	}
	return "Saving configuration...\n"
}

func EnvPath(runtimePath string) string {
	return filepath.Join(runtimePath, ".env")
}

// Render produces the .env content for state.
func Render(state *State) (string, error) {
	var sections []string
	for _, c := range []any{&state.App, &state.RAG, &state.Telegram} {
		s, err := env.MarshalEnv(c)
		if err != nil {
			return "", err
		}
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n"), nil
}

// Save writes the configuration. An existing .env is never overwritten.
func Save(state *State) error {
	dir := state.App.RuntimePath
	if err := os.MkdirAll(filepath.Join(dir, "knowledge"), 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := EnvPath(dir)
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := Render(state)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		return err
	}

	promptPath := state.App.GetSystemPromptPath()
	if _, err := os.Stat(promptPath); os.IsNotExist(err) {
		if err := os.WriteFile(promptPath, []byte(advisor.DefaultSystemPrompt+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", promptPath, err)
		}
	}
	return nil
}
