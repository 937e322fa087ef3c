package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/shopspring/decimal"
)

type toolHandler func(ctx context.Context, args json.RawMessage) (string, error)

type toolDef struct {
	Description string
	Schema      string
	Handler     toolHandler
}

const sipSchema = `
{
  "type": "object",
  "properties": {
    "monthly_contribution": { "type": "number", "description": "Amount invested every month" },
    "annual_rate_percent": { "type": "number", "description": "Expected annual return in percent, e.g. 12" },
    "years": { "type": "integer", "description": "Investment horizon in years" },
    "principal": { "type": "number", "description": "Optional amount invested upfront" },
    "periods_per_year": { "type": "integer", "description": "Optional compounding periods per year, monthly (12) when omitted" }
  },
  "required": ["monthly_contribution", "annual_rate_percent", "years"]
}`

const riskSchema = `
{
  "type": "object",
  "properties": {
    "answers": {
      "type": "array",
      "items": { "type": "integer", "minimum": 1, "maximum": 5 },
      "description": "One answer per questionnaire item (goal, horizon, drawdown, experience, income), 1 = most cautious, 5 = most risk tolerant"
    }
  },
  "required": ["answers"]
}`

const budgetSchema = `
{
  "type": "object",
  "properties": {
    "monthly_income": { "type": "number", "description": "Monthly take-home income" }
  },
  "required": ["monthly_income"]
}`

const adviceSchema = `
{
  "type": "object",
  "properties": {
    "question": { "type": "string", "description": "Personal finance question in plain language" },
    "profile": { "type": "string", "enum": ["conservative", "moderate", "aggressive"], "description": "Optional risk profile" }
  },
  "required": ["question"]
}`

type financeTools struct {
	advisor  Advisor
	currency string
}

func (t *financeTools) definitions() map[string]toolDef {
	return map[string]toolDef{
		"sip_projection": {
			Description: "Project the future value of a monthly SIP with compounding every month",
			Schema:      sipSchema,
			Handler:     t.sipProjection,
		},
		"risk_profile": {
			Description: "Classify an investor's risk profile from questionnaire answers and suggest an asset allocation",
			Schema:      riskSchema,
			Handler:     t.riskProfile,
		},
		"budget_plan": {
			Description: "Split a monthly income with the 50/30/20 rule and size the emergency fund",
			Schema:      budgetSchema,
			Handler:     t.budgetPlan,
		},
		"finance_advice": {
			Description: "Answer a personal finance question using the knowledge base and, when figures are given, a projection",
			Schema:      adviceSchema,
			Handler:     t.financeAdvice,
		},
	}
}

func (t *financeTools) sipProjection(ctx context.Context, args json.RawMessage) (string, error) {
	var in struct {
		MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
		AnnualRatePercent   decimal.Decimal `json:"annual_rate_percent"`
		Years               int             `json:"years"`
		Principal           decimal.Decimal `json:"principal"`
		PeriodsPerYear      int             `json:"periods_per_year"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	res, err := finance.ProjectSIP(finance.ProjectionRequest{
		Principal:           in.Principal,
		MonthlyContribution: in.MonthlyContribution,
		AnnualRatePercent:   in.AnnualRatePercent,
		Years:               in.Years,
		PeriodsPerYear:      in.PeriodsPerYear,
	}.WithDefaults())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Final value: %s\nInvested: %s\nGrowth: %s\nReturn on invested amount: %s%%",
		advisor.FormatMoney(res.FinalValue, t.currency),
		advisor.FormatMoney(res.TotalContributed, t.currency),
		advisor.FormatMoney(res.TotalGrowth, t.currency),
		finance.ReturnPercent(res).StringFixed(2),
	), nil
}

func (t *financeTools) riskProfile(ctx context.Context, args json.RawMessage) (string, error) {
	var in struct {
		Answers risk.Response `json:"answers"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	score, err := risk.Score(in.Answers)
	if err != nil {
		return "", err
	}
	p := risk.ProfileForScore(score)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile: %s (score %d of %d)\n", p, score, risk.MaxScore())
	fmt.Fprintf(&sb, "Expected return: %s\n", p.ExpectedReturn())
	sb.WriteString("Allocation:\n")
	for _, a := range p.Allocation() {
		fmt.Fprintf(&sb, "- %s%% %s\n", a.Percent, a.AssetClass)
	}
	sb.WriteString(p.Recommendation())
	return sb.String(), nil
}

func (t *financeTools) budgetPlan(ctx context.Context, args json.RawMessage) (string, error) {
	var in struct {
		MonthlyIncome decimal.Decimal `json:"monthly_income"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	plan, err := finance.PlanBudget(in.MonthlyIncome)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (t *financeTools) financeAdvice(ctx context.Context, args json.RawMessage) (string, error) {
	var in struct {
		Question string `json:"question"`
		Profile  string `json:"profile"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	q := advisor.Query{Text: in.Question}
	if in.Profile != "" {
		p, err := risk.ParseProfile(in.Profile)
		if err != nil {
			return "", err
		}
		q.Profile = &p
	}

	resp, err := t.advisor.Advise(ctx, q)
	if err != nil {
		return "", err
	}
	if len(resp.CitedChunks) == 0 {
		return resp.Narrative, nil
	}
	return fmt.Sprintf("%s\n\nSources: %s", resp.Narrative, strings.Join(resp.CitedChunks, ", ")), nil
}
