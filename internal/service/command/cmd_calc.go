package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
)

type SIPCommand struct {
	currency  string
	formatter *ResponseFormatter
}

func NewSIPCommand(currency string) *SIPCommand {
	return &SIPCommand{currency: currency, formatter: NewResponseFormatter()}
}

func (c *SIPCommand) Name() string        { return "sip" }
func (c *SIPCommand) Description() string { return "Project a monthly SIP" }
func (c *SIPCommand) Usage() string       { return "/sip <monthly> <rate%> <years>" }

func (c *SIPCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 3 {
		return c.formatter.Combine(
			c.formatter.Usage(c.Usage()),
			c.formatter.Examples([]string{"/sip 5000 12 10", "/sip 10k 14% 20"}),
		), nil
	}

	monthly, err := parseAmount("monthly_contribution", args[0])
	if err != nil {
		return "", err
	}
	rate, err := parseRate(args[1])
	if err != nil {
		return "", err
	}
	years, err := parseInt("years", args[2])
	if err != nil {
		return "", err
	}

	res, err := finance.ProjectSIP(finance.ProjectionRequest{
		MonthlyContribution: monthly,
		AnnualRatePercent:   rate,
		Years:               years,
		PeriodsPerYear:      finance.DefaultPeriodsPerYear,
	})
	if err != nil {
		return "", err
	}
	return projectionReport(c.formatter, "SIP Projection", res, c.currency), nil
}

type LumpSumCommand struct {
	currency  string
	formatter *ResponseFormatter
}

func NewLumpSumCommand(currency string) *LumpSumCommand {
	return &LumpSumCommand{currency: currency, formatter: NewResponseFormatter()}
}

func (c *LumpSumCommand) Name() string        { return "lumpsum" }
func (c *LumpSumCommand) Description() string { return "Project a one-time investment" }
func (c *LumpSumCommand) Usage() string       { return "/lumpsum <amount> <rate%> <years>" }

func (c *LumpSumCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 3 {
		return c.formatter.Usage(c.Usage()), nil
	}
	amount, err := parseAmount("principal", args[0])
	if err != nil {
		return "", err
	}
	rate, err := parseRate(args[1])
	if err != nil {
		return "", err
	}
	years, err := parseInt("years", args[2])
	if err != nil {
		return "", err
	}

	res, err := finance.ProjectLumpSum(amount, rate, years, 1)
	if err != nil {
		return "", err
	}
	return projectionReport(c.formatter, "Lump Sum Projection", res, c.currency), nil
}

type EMICommand struct {
	currency  string
	formatter *ResponseFormatter
}

func NewEMICommand(currency string) *EMICommand {
	return &EMICommand{currency: currency, formatter: NewResponseFormatter()}
}

func (c *EMICommand) Name() string        { return "emi" }
func (c *EMICommand) Description() string { return "Monthly installment of a loan" }
func (c *EMICommand) Usage() string       { return "/emi <principal> <rate%> <months>" }

func (c *EMICommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 3 {
		return c.formatter.Combine(
			c.formatter.Usage(c.Usage()),
			c.formatter.Examples([]string{"/emi 25lakh 8.5 240"}),
		), nil
	}
	principal, err := parseAmount("principal", args[0])
	if err != nil {
		return "", err
	}
	rate, err := parseRate(args[1])
	if err != nil {
		return "", err
	}
	months, err := parseInt("months", args[2])
	if err != nil {
		return "", err
	}

	res, err := finance.Amortize(principal, rate, months)
	if err != nil {
		return "", err
	}
	return c.formatter.Combine(
		c.formatter.Info("Loan EMI"),
		c.formatter.Label("Monthly payment", advisor.FormatMoney(res.MonthlyPayment, c.currency)),
		c.formatter.Label("Total paid", advisor.FormatMoney(res.TotalPaid, c.currency)),
		c.formatter.Label("Total interest", advisor.FormatMoney(res.TotalInterest, c.currency)),
	), nil
}

type BudgetCommand struct {
	currency  string
	formatter *ResponseFormatter
}

func NewBudgetCommand(currency string) *BudgetCommand {
	return &BudgetCommand{currency: currency, formatter: NewResponseFormatter()}
}

func (c *BudgetCommand) Name() string        { return "budget" }
func (c *BudgetCommand) Description() string { return "Split a monthly income with the 50/30/20 rule" }
func (c *BudgetCommand) Usage() string       { return "/budget <monthly income>" }

func (c *BudgetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) != 1 {
		return c.formatter.Usage(c.Usage()), nil
	}
	income, err := parseAmount("monthly_income", args[0])
	if err != nil {
		return "", err
	}
	plan, err := finance.PlanBudget(income)
	if err != nil {
		return "", err
	}

	return c.formatter.Combine(
		c.formatter.Info("Monthly Budget"),
		c.formatter.Label("Needs (50%)", advisor.FormatMoney(plan.Needs, c.currency)),
		c.formatter.Label("Wants (30%)", advisor.FormatMoney(plan.Wants, c.currency)),
		c.formatter.Label("Savings (20%)", advisor.FormatMoney(plan.Savings, c.currency)),
		c.formatter.Label("Emergency fund target", advisor.FormatMoney(plan.EmergencyFund, c.currency)),
		c.formatter.Label("Suggested SIP", advisor.FormatMoney(plan.SuggestedSIP, c.currency)),
		c.formatter.Label("Insurance budget", advisor.FormatMoney(plan.InsuranceBudget, c.currency)),
	), nil
}

func projectionReport(f *ResponseFormatter, title string, res *finance.ProjectionResult, currency string) string {
	return f.Combine(
		f.Info(title),
		f.Label("Invested", advisor.FormatMoney(res.TotalContributed, currency)),
		f.Label("Growth", advisor.FormatMoney(res.TotalGrowth, currency)),
		f.Label("Final value", advisor.FormatMoney(res.FinalValue, currency)),
		f.Label("Return", fmt.Sprintf("%s%%", finance.ReturnPercent(res).StringFixed(2))),
	)
}

var _ core.Command = (*SIPCommand)(nil)
