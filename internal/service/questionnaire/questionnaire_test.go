package questionnaire

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func digit(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, digit(r))
	}
	return m
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestQuestionnaire_Flow(t *testing.T) {
	m := newModel("INR")

	m = press(t, m, digit('4'), digit('4'), digit('3'), digit('4'), digit('4'))
	require.Equal(t, phaseMonthly, m.phase)
	assert.Equal(t, risk.Response{4, 4, 3, 4, 4}, m.result.Answers)
	assert.Equal(t, 37, m.result.Score)
	assert.Equal(t, risk.Aggressive, m.result.Profile)

	m = typeText(t, m, "5000")
	m = press(t, m, enter)
	require.Equal(t, phaseYears, m.phase)
	assert.True(t, m.result.Monthly.Equal(decimal.NewFromInt(5000)))

	m = typeText(t, m, "10")
	m = press(t, m, enter)
	require.Equal(t, phaseDone, m.phase)
	require.NotNil(t, m.result.Illustration)
	assert.Equal(t, 10, m.result.Years)
	assert.Contains(t, m.View(), "Aggressive")
}

func TestQuestionnaire_CursorAnswers(t *testing.T) {
	m := newModel("INR")
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	// default cursor is the middle option
	m = press(t, m, enter)
	m = press(t, m, up, up, up, enter)
	m = press(t, m, down, down, down, down, down, enter)
	assert.Equal(t, risk.Response{3, 1, 5}, m.answers)
}

func TestQuestionnaire_RejectsBadAmount(t *testing.T) {
	m := newModel("INR")
	m = press(t, m, digit('3'), digit('3'), digit('3'), digit('3'), digit('3'))

	m = typeText(t, m, "-5")
	m = press(t, m, enter)
	assert.Equal(t, phaseMonthly, m.phase)
	assert.Error(t, m.err)
}

func TestQuestionnaire_Cancel(t *testing.T) {
	m := press(t, newModel("INR"), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.Equal(t, "Questionnaire cancelled.\n", m.View())
}

func TestSummary(t *testing.T) {
	res, err := risk.Illustrate(risk.Conservative, decimal.NewFromInt(1000), 5)
	require.NoError(t, err)

	out := Summary(Result{Score: 20, Profile: risk.Conservative, Monthly: decimal.NewFromInt(1000), Years: 5, Illustration: res}, "INR")
	assert.Contains(t, out, "Score: 20 of 50")
	assert.Contains(t, out, "Debt funds and fixed deposits")
	assert.Contains(t, out, "INR 60000.00")
}
