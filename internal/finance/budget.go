package finance

import (
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

// 50/30/20 budgeting rule.
var (
	needsShare   = decimal.NewFromFloat(0.50)
	wantsShare   = decimal.NewFromFloat(0.30)
	savingsShare = decimal.NewFromFloat(0.20)

	emergencyMonths = decimal.NewFromInt(6)
	sipOfSavings    = decimal.NewFromFloat(0.70)
	insuranceOfNeed = decimal.NewFromFloat(0.10)
)

type BudgetPlan struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	Needs           decimal.Decimal `json:"needs"`
	Wants           decimal.Decimal `json:"wants"`
	Savings         decimal.Decimal `json:"savings"`
	EmergencyFund   decimal.Decimal `json:"emergency_fund"`
	SuggestedSIP    decimal.Decimal `json:"suggested_sip"`
	InsuranceBudget decimal.Decimal `json:"insurance_budget"`
}

// PlanBudget splits a monthly income with the 50/30/20 rule. Savings take the
// rounding remainder so the three buckets always add up to the income.
func PlanBudget(monthlyIncome decimal.Decimal) (*BudgetPlan, error) {
	if !monthlyIncome.IsPositive() {
		return nil, core.NewInvalidInput("monthly_income", "must be positive")
	}

	income := monthlyIncome.RoundBank(CurrencyPlaces)
	needs := income.Mul(needsShare).RoundBank(CurrencyPlaces)
	wants := income.Mul(wantsShare).RoundBank(CurrencyPlaces)
	savings := income.Sub(needs).Sub(wants)

	return &BudgetPlan{
		MonthlyIncome:   income,
		Needs:           needs,
		Wants:           wants,
		Savings:         savings,
		EmergencyFund:   income.Mul(emergencyMonths),
		SuggestedSIP:    savings.Mul(sipOfSavings).RoundBank(CurrencyPlaces),
		InsuranceBudget: needs.Mul(insuranceOfNeed).RoundBank(CurrencyPlaces),
	}, nil
}

// SavingsRate is the configured savings share expressed in percent.
func SavingsRate() decimal.Decimal {
	return savingsShare.Mul(hundred)
}
