package setup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/finadvisor/internal/service/ui"
)

// choiceStep selects one entry of a fixed list.
type choiceStep struct {
	title   string
	choices []string
	cursor  int
	apply   func(state *State, choice string)
}

func (s *choiceStep) Init(state *State) tea.Cmd { return nil }

func (s *choiceStep) Update(msg tea.Msg, state *State) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		s.apply(state, s.choices[s.cursor])
		return nil, nil
	}
	return s, nil
}

func (s *choiceStep) View(state *State) string {
	return s.title + "\n\n" + ui.Choices(s.choices, s.cursor)
}

func newProviderStep() Step {
	return &choiceStep{
		title:   "Which language model should write the advice?",
		choices: []string{"ollama", "openai", "anthropic", "openrouter", "custom", "none"},
		apply: func(state *State, choice string) {
			state.App.LLMProvider = choice
			state.App.LLMModel = defaultModels[choice]
			state.App.LLMBaseURL = ""
			if choice == "ollama" {
				state.App.LLMBaseURL = "http://localhost:11434"
			}
		},
	}
}

func newChannelStep() Step {
	return &choiceStep{
		title:   "How will you talk to the advisor?",
		choices: []string{"HTTP API", "Telegram", "HTTP API and Telegram", "CLI only"},
		apply: func(state *State, choice string) {
			state.App.EnableHTTP = strings.Contains(choice, "HTTP")
			state.App.EnableTelegram = strings.Contains(choice, "Telegram")
		},
	}
}

// inputStep reads one line of text.
type inputStep struct {
	title       string
	placeholder func(state *State) string
	secret      bool
	optional    bool
	skip        func(state *State) bool
	validate    func(value string) error
	apply       func(state *State, value string)

	input textinput.Model
	err   error
}

func (s *inputStep) Skip(state *State) bool {
	return s.skip != nil && s.skip(state)
}

func (s *inputStep) Init(state *State) tea.Cmd {
	s.input = textinput.New()
	s.input.CharLimit = 255
	s.input.Width = 50
	if s.placeholder != nil {
		s.input.Placeholder = s.placeholder(state)
	}
	if s.secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
	s.input.Focus()
	return textinput.Blink
}

func (s *inputStep) Update(msg tea.Msg, state *State) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !s.secret {
			value = s.input.Placeholder
		}
		if value == "" && !s.optional {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if s.validate != nil && value != "" {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		s.apply(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *inputStep) View(state *State) string {
	hint := ""
	if s.optional {
		hint = ui.DescStyle.Render(" (optional)")
	}
	out := s.title + hint + "\n\n" + s.input.View() + "\n"
	if s.err != nil {
		out += "\n" + ui.ErrorStyle.Render(s.err.Error()) + "\n"
	}
	return out
}

func newAPIKeyStep() Step {
	return &inputStep{
		title:  "API key",
		secret: true,
		skip:   func(state *State) bool { return !needsAPIKey(state.App.LLMProvider) },
		apply:  func(state *State, v string) { state.App.LLMAPIKey = v },
	}
}

func newBaseURLStep() Step {
	return &inputStep{
		title:       "Base URL of the model server",
		placeholder: func(state *State) string { return state.App.LLMBaseURL },
		skip:        func(state *State) bool { return !needsBaseURL(state.App.LLMProvider) },
		validate: func(v string) error {
			if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
				return fmt.Errorf("url must start with http:// or https://")
			}
			return nil
		},
		apply: func(state *State, v string) { state.App.LLMBaseURL = strings.TrimRight(v, "/") },
	}
}

func newModelStep() Step {
	return &inputStep{
		title:       "Model name",
		placeholder: func(state *State) string { return state.App.LLMModel },
		skip:        func(state *State) bool { return state.App.LLMProvider == "none" },
		apply:       func(state *State, v string) { state.App.LLMModel = v },
	}
}

func newTelegramTokenStep() Step {
	return &inputStep{
		title:  "Telegram bot token from @BotFather",
		secret: true,
		skip:   func(state *State) bool { return !state.App.EnableTelegram },
		apply:  func(state *State, v string) { state.Telegram.Token = v },
	}
}

func newTelegramOwnerStep() Step {
	return &inputStep{
		title: "Your Telegram user ID (only this user may use the bot)",
		skip:  func(state *State) bool { return !state.App.EnableTelegram },
		validate: func(v string) error {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return fmt.Errorf("user id must be a number")
			}
			return nil
		},
		apply: func(state *State, v string) {
			id, _ := strconv.ParseInt(v, 10, 64)
			state.Telegram.OwnerID = id
		},
	}
}
