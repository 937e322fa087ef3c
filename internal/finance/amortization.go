package finance

import (
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

// MaxLoanMonths bounds amortization schedules to 50 years.
const MaxLoanMonths = 600

type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

type AmortizationResult struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Schedule       []Installment   `json:"schedule"`
}

// EMI returns the equated monthly installment of an annuity loan.
func EMI(principal, annualRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if err := validateLoan(principal, annualRatePercent, months); err != nil {
		return decimal.Zero, err
	}
	return emi(principal, annualRatePercent, months), nil
}

func emi(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	r := annualRatePercent.Div(hundred).Div(monthsInYear)
	if r.IsZero() {
		return principal.Div(n).RoundBank(CurrencyPlaces)
	}
	one := decimal.NewFromInt(1)
	factor := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(one)).RoundBank(CurrencyPlaces)
}

// Amortize builds the monthly repayment schedule of an annuity loan. The last
// installment absorbs the rounding residue so the balance closes at zero.
func Amortize(principal, annualRatePercent decimal.Decimal, months int) (*AmortizationResult, error) {
	if err := validateLoan(principal, annualRatePercent, months); err != nil {
		return nil, err
	}

	payment := emi(principal, annualRatePercent, months)
	r := annualRatePercent.Div(hundred).Div(monthsInYear)

	balance := principal.RoundBank(CurrencyPlaces)
	totalPaid := decimal.Zero
	totalInterest := decimal.Zero
	schedule := make([]Installment, 0, months)

	for m := 1; m <= months; m++ {
		interest := balance.Mul(r).RoundBank(CurrencyPlaces)
		pay := payment
		if m == months || pay.GreaterThan(balance.Add(interest)) {
			pay = balance.Add(interest)
		}
		principalPart := pay.Sub(interest)
		balance = balance.Sub(principalPart)

		totalPaid = totalPaid.Add(pay)
		totalInterest = totalInterest.Add(interest)
		schedule = append(schedule, Installment{
			Month:     m,
			Payment:   pay,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
		if balance.IsZero() {
			break
		}
	}

	return &AmortizationResult{
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	}, nil
}

func validateLoan(principal, annualRatePercent decimal.Decimal, months int) error {
	if !principal.IsPositive() {
		return core.NewInvalidInput("principal", "must be positive")
	}
	if annualRatePercent.IsNegative() {
		return core.NewInvalidInput("annual_rate_percent", "must not be negative")
	}
	if months <= 0 || months > MaxLoanMonths {
		return core.NewInvalidInput("months", "must be between 1 and 600")
	}
	return nil
}
