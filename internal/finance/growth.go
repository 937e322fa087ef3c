package finance

import (
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

var seventyTwo = decimal.NewFromInt(72)

// SIPFutureValue is the closed-form future value of a monthly SIP with
// contributions at the start of every month.
func SIPFutureValue(monthly, annualRatePercent decimal.Decimal, years int) (decimal.Decimal, error) {
	if monthly.IsNegative() {
		return decimal.Zero, core.NewInvalidInput("monthly_contribution", "must not be negative")
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, core.NewInvalidInput("annual_rate_percent", "must not be negative")
	}
	if years <= 0 {
		return decimal.Zero, core.NewInvalidInput("years", "must be a positive integer")
	}

	months := decimal.NewFromInt(int64(years * 12))
	i := annualRatePercent.Div(hundred).Div(monthsInYear)
	if i.IsZero() {
		return monthly.Mul(months).RoundBank(CurrencyPlaces), nil
	}

	one := decimal.NewFromInt(1)
	factor := one.Add(i).Pow(months)
	fv := monthly.Mul(factor.Sub(one).Div(i)).Mul(one.Add(i))
	return fv.RoundBank(CurrencyPlaces), nil
}

// CompoundGrowth grows an amount at an annual rate compounded periodsPerYear times.
func CompoundGrowth(amount, annualRatePercent decimal.Decimal, years, periodsPerYear int) (decimal.Decimal, error) {
	res, err := ProjectLumpSum(amount, annualRatePercent, years, periodsPerYear)
	if err != nil {
		return decimal.Zero, err
	}
	return res.FinalValue, nil
}

// RuleOf72 estimates the number of years needed to double an investment.
func RuleOf72(annualRatePercent decimal.Decimal) (decimal.Decimal, error) {
	if !annualRatePercent.IsPositive() {
		return decimal.Zero, core.NewInvalidInput("annual_rate_percent", "must be positive")
	}
	return seventyTwo.Div(annualRatePercent).Round(1), nil
}
