package questionnaire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/ui"
	"github.com/shopspring/decimal"
)

var ErrInterrupted = errors.New("questionnaire interrupted")

// Result is what the questionnaire collected and computed.
type Result struct {
	Answers      risk.Response
	Score        int
	Profile      risk.Profile
	Monthly      decimal.Decimal
	Years        int
	Illustration *finance.ProjectionResult
}

type phase int

const (
	phaseQuestions phase = iota
	phaseMonthly
	phaseYears
	phaseDone
)

type model struct {
	phase    phase
	current  int
	cursor   int
	answers  risk.Response
	input    textinput.Model
	bar      progress.Model
	currency string
	result   Result
	err      error
	quitting bool
}

func newModel(currency string) model {
	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 20

	return model{
		answers:  make(risk.Response, 0, len(risk.Questions)),
		input:    ti,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		currency: currency,
		cursor:   2,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "ctrl+c" || key.String() == "esc") {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuestions:
		return m.updateQuestion(msg)
	case phaseMonthly, phaseYears:
		return m.updateInput(msg)
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateQuestion(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	q := risk.Questions[m.current]

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5":
		n := int(key.Runes[0] - '0')
		if n <= len(q.Options) {
			m.cursor = n - 1
			return m.answer()
		}
	case "enter":
		return m.answer()
	}
	return m, nil
}

func (m model) answer() (tea.Model, tea.Cmd) {
	m.answers = append(m.answers, m.cursor+risk.MinAnswer)
	m.current++
	m.cursor = 2
	if m.current < len(risk.Questions) {
		return m, nil
	}

	score, err := risk.Score(m.answers)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.result.Answers = m.answers
	m.result.Score = score
	m.result.Profile = risk.ProfileForScore(score)

	m.phase = phaseMonthly
	m.input.Placeholder = "5000"
	m.input.Focus()
	return m, textinput.Blink
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		value = m.input.Placeholder
	}
	m.err = nil

	switch m.phase {
	case phaseMonthly:
		d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
		if err != nil || !d.IsPositive() {
			m.err = fmt.Errorf("enter a positive amount")
			return m, nil
		}
		m.result.Monthly = d
		m.phase = phaseYears
		m.input.SetValue("")
		m.input.Placeholder = "10"
		return m, nil

	case phaseYears:
		var years int
		if _, err := fmt.Sscanf(value, "%d", &years); err != nil || years <= 0 {
			m.err = fmt.Errorf("enter a whole number of years")
			return m, nil
		}
		res, err := risk.Illustrate(m.result.Profile, m.result.Monthly, years)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.result.Years = years
		m.result.Illustration = res
		m.phase = phaseDone
		m.input.Blur()
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Questionnaire cancelled.\n"
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Risk profile questionnaire") + "\n")

	switch m.phase {
	case phaseQuestions:
		done := float64(m.current) / float64(len(risk.Questions))
		b.WriteString(m.bar.ViewAs(done) + "\n\n")

		q := risk.Questions[m.current]
		fmt.Fprintf(&b, "%d/%d  %s\n\n", m.current+1, len(risk.Questions), q.Text)
		b.WriteString(ui.Choices(q.Options, m.cursor))
		b.WriteString(ui.DescStyle.Render("\n↑/↓ to move, enter or 1-5 to answer, esc to quit") + "\n")

	case phaseMonthly, phaseYears:
		b.WriteString(m.bar.ViewAs(1) + "\n\n")
		fmt.Fprintf(&b, "Your profile: %s\n\n", ui.GainStyle.Render(m.result.Profile.String()))
		if m.phase == phaseMonthly {
			fmt.Fprintf(&b, "How much can you invest every month (%s)?\n\n", m.currency)
		} else {
			b.WriteString("For how many years?\n\n")
		}
		b.WriteString(m.input.View() + "\n")
		if m.err != nil {
			b.WriteString("\n" + ui.ErrorStyle.Render(m.err.Error()) + "\n")
		}

	case phaseDone:
		b.WriteString(Summary(m.result, m.currency))
		b.WriteString(ui.DescStyle.Render("\npress any key to exit") + "\n")
	}
	return b.String()
}

// Summary renders a finished result for the terminal.
func Summary(r Result, currency string) string {
	p := r.Profile
	var b strings.Builder

	fmt.Fprintf(&b, "Score: %d of %d\n", r.Score, risk.MaxScore())
	fmt.Fprintf(&b, "Profile: %s\n", ui.GainStyle.Render(p.String()))
	fmt.Fprintf(&b, "Expected return: %s\n\n", p.ExpectedReturn())

	var alloc strings.Builder
	for _, a := range p.Allocation() {
		fmt.Fprintf(&alloc, "%3s%%  %s\n", a.Percent, a.AssetClass)
	}
	b.WriteString(ui.BoxStyle.Render(strings.TrimRight(alloc.String(), "\n")) + "\n\n")

	if res := r.Illustration; res != nil {
		fmt.Fprintf(&b, "Investing %s %s a month for %d years at %s%%:\n",
			currency, r.Monthly.StringFixed(2), r.Years, p.ExpectedReturn().Midpoint().String())
		fmt.Fprintf(&b, "  invested     %s %s\n", currency, res.TotalContributed.StringFixed(2))
		fmt.Fprintf(&b, "  growth       %s\n", ui.GainStyle.Render(currency+" "+res.TotalGrowth.StringFixed(2)))
		fmt.Fprintf(&b, "  final value  %s %s\n\n", currency, res.FinalValue.StringFixed(2))
	}
	b.WriteString(p.Recommendation() + "\n")
	return b.String()
}

// Run shows the questionnaire on the terminal and returns the result.
func Run(currency string) (*Result, error) {
	p := tea.NewProgram(newModel(currency))
	out, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := out.(model)
	if final.err != nil {
		return nil, final.err
	}
	if final.quitting || final.phase != phaseDone {
		return nil, ErrInterrupted
	}
	return &final.result, nil
}
