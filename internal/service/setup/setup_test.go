package setup

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func typeText(m model, s string) model {
	for _, r := range s {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// stepsWithoutSave keeps the wizard away from the filesystem.
func stepsWithoutSave() []Step {
	steps := defaultSteps()
	return steps[:len(steps)-1]
}

func TestWizard_OllamaSkipsAPIKey(t *testing.T) {
	state := NewState(t.TempDir())
	m := newModel(state, stepsWithoutSave())
	m.Init()

	// provider: ollama is first
	m = send(m, enter)
	assert.Equal(t, "ollama", state.App.LLMProvider)
	// api key step is skipped, base url accepts the placeholder
	assert.Contains(t, m.View(), "Base URL")
	m.steps[m.current].Init(state)
	m = send(m, enter)
	assert.Equal(t, "http://localhost:11434", state.App.LLMBaseURL)

	// model keeps its default
	m = send(m, enter)
	assert.Equal(t, "llama3.2", state.App.LLMModel)

	// channel: HTTP API only, telegram steps are skipped
	m = send(m, enter)
	assert.True(t, state.App.EnableHTTP)
	assert.False(t, state.App.EnableTelegram)
	assert.Equal(t, len(m.steps), m.current)
}

func TestWizard_TelegramOwnerValidation(t *testing.T) {
	state := NewState(t.TempDir())
	state.App.EnableTelegram = true

	step := newTelegramOwnerStep().(*inputStep)
	step.Init(state)
	m := newModel(state, []Step{step})

	m = typeText(m, "abc")
	m = send(m, enter)
	assert.Equal(t, 0, m.current)
	assert.Contains(t, m.View(), "user id must be a number")
}

func TestWizard_Cancel(t *testing.T) {
	m := newModel(NewState(t.TempDir()), stepsWithoutSave())
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
}

func TestRender(t *testing.T) {
	state := NewState("/tmp/fin")
	state.App.LLMProvider = "openai"
	state.App.LLMAPIKey = "sk-test"
	state.App.EnableHTTP = false
	state.App.EnableTelegram = true
	state.Telegram.Token = "123:abc"
	state.Telegram.OwnerID = 42

	content, err := Render(state)
	require.NoError(t, err)

	vars, err := godotenv.Unmarshal(content)
	require.NoError(t, err)
	assert.Equal(t, "openai", vars["FIN_LLM_PROVIDER"])
	assert.Equal(t, "sk-test", vars["FIN_LLM_API_KEY"])
	assert.Equal(t, "false", vars["FIN_ENABLE_HTTP"])
	assert.Equal(t, "true", vars["FIN_ENABLE_TELEGRAM"])
	assert.Equal(t, "42", vars["TELEGRAM_OWNER_ID"])
	assert.Equal(t, "hash", vars["FIN_EMBEDDING_ENCODER"])
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	state := NewState(dir)

	require.NoError(t, Save(state))

	vars, err := godotenv.Read(EnvPath(dir))
	require.NoError(t, err)
	assert.Equal(t, "ollama", vars["FIN_LLM_PROVIDER"])

	prompt, err := os.ReadFile(filepath.Join(dir, "SYSTEM.md"))
	require.NoError(t, err)
	assert.Contains(t, string(prompt), advisor.DefaultSystemPrompt)
	assert.DirExists(t, filepath.Join(dir, "knowledge"))

	// a second run must not clobber the existing file
	assert.Error(t, Save(state))
}
