package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/finadvisor/internal/risk"
)

type RiskCommand struct {
	formatter *ResponseFormatter
}

func NewRiskCommand() *RiskCommand {
	return &RiskCommand{formatter: NewResponseFormatter()}
}

func (c *RiskCommand) Name() string        { return "risk" }
func (c *RiskCommand) Description() string { return "Classify your risk profile" }
func (c *RiskCommand) Usage() string {
	return fmt.Sprintf("/risk <%d answers, %d-%d each>", len(risk.Questions), risk.MinAnswer, risk.MaxAnswer)
}

func (c *RiskCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.questionnaire(), nil
	}

	resp := make(risk.Response, 0, len(args))
	for _, a := range args {
		n, err := parseInt("answers", a)
		if err != nil {
			return "", err
		}
		resp = append(resp, n)
	}

	score, err := risk.Score(resp)
	if err != nil {
		return "", err
	}
	p := risk.ProfileForScore(score)

	var alloc []string
	for _, a := range p.Allocation() {
		alloc = append(alloc, fmt.Sprintf("%s%% %s", a.Percent.String(), a.AssetClass))
	}

	return c.formatter.Combine(
		c.formatter.Info("Risk Profile"),
		c.formatter.Label("Score", fmt.Sprintf("%d / %d", score, risk.MaxScore())),
		c.formatter.Label("Profile", p.String()),
		c.formatter.Label("Expected return", p.ExpectedReturn().String()),
		c.formatter.Section("🧺", "Suggested allocation", c.formatter.List(alloc)),
		p.Recommendation(),
	), nil
}

func (c *RiskCommand) questionnaire() string {
	var sections []string
	sections = append(sections, c.formatter.Info("Risk Questionnaire"))
	for i, q := range risk.Questions {
		opts := make([]string, len(q.Options))
		for j, o := range q.Options {
			opts[j] = fmt.Sprintf("%d. %s", j+1, o)
		}
		sections = append(sections, c.formatter.Section(fmt.Sprintf("%d.", i+1), q.Text, c.formatter.List(opts)))
	}
	sections = append(sections,
		c.formatter.Usage(c.Usage()),
		c.formatter.Examples([]string{"/risk 3 4 3 2 4"}),
	)
	return c.formatter.Combine(sections...)
}
