package finance

import (
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

const (
	// CurrencyPlaces is the number of decimal places of the smallest currency unit.
	CurrencyPlaces = 2

	// DefaultPeriodsPerYear is monthly compounding.
	DefaultPeriodsPerYear = 12

	// MaxPeriods bounds the projection loop (1000 years of monthly periods).
	MaxPeriods = 12000
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// ProjectionRequest describes a periodic investment plan.
type ProjectionRequest struct {
	Principal           decimal.Decimal `json:"principal"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	AnnualRatePercent   decimal.Decimal `json:"annual_rate_percent"`
	Years               int             `json:"years"`
	PeriodsPerYear      int             `json:"periods_per_year"`
}

// SchedulePoint is the balance at the end of a compounding period.
type SchedulePoint struct {
	Period  int             `json:"period"`
	Balance decimal.Decimal `json:"balance"`
}

// ProjectionResult holds the projected outcome of a plan.
// FinalValue always equals TotalContributed + TotalGrowth.
type ProjectionResult struct {
	FinalValue       decimal.Decimal `json:"final_value"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	TotalGrowth      decimal.Decimal `json:"total_growth"`
	Schedule         []SchedulePoint `json:"schedule"`
}

// Validate checks the request invariants.
func (r ProjectionRequest) Validate() error {
	if r.Principal.IsNegative() {
		return core.NewInvalidInput("principal", "must not be negative")
	}
	if r.MonthlyContribution.IsNegative() {
		return core.NewInvalidInput("monthly_contribution", "must not be negative")
	}
	if r.AnnualRatePercent.IsNegative() {
		return core.NewInvalidInput("annual_rate_percent", "must not be negative")
	}
	if r.Years <= 0 {
		return core.NewInvalidInput("years", "must be a positive integer")
	}
	if r.PeriodsPerYear <= 0 {
		return core.NewInvalidInput("periods_per_year", "must be a positive integer")
	}
	if r.Years > MaxPeriods/r.PeriodsPerYear {
		return core.NewInvalidInput("years", "exceeds the supported projection horizon")
	}
	return nil
}

// Periods returns the total number of compounding periods.
func (r ProjectionRequest) Periods() int {
	return r.Years * r.PeriodsPerYear
}

// PeriodContribution converts the monthly contribution to the amount paid each
// compounding period (e.g. 3x monthly for quarterly compounding).
func (r ProjectionRequest) PeriodContribution() decimal.Decimal {
	if r.PeriodsPerYear == DefaultPeriodsPerYear {
		return r.MonthlyContribution
	}
	return r.MonthlyContribution.Mul(monthsInYear).Div(decimal.NewFromInt(int64(r.PeriodsPerYear)))
}

// contributionsThrough is the rounded sum of contributions paid in the first
// p periods. Over a whole plan it equals MonthlyContribution * 12 * Years.
func (r ProjectionRequest) contributionsThrough(p int) decimal.Decimal {
	return r.MonthlyContribution.Mul(monthsInYear).
		Mul(decimal.NewFromInt(int64(p))).
		Div(decimal.NewFromInt(int64(r.PeriodsPerYear))).
		RoundBank(CurrencyPlaces)
}

// WithDefaults fills an unset PeriodsPerYear with monthly compounding.
func (r ProjectionRequest) WithDefaults() ProjectionRequest {
	if r.PeriodsPerYear == 0 {
		r.PeriodsPerYear = DefaultPeriodsPerYear
	}
	return r
}

// PeriodRate returns the fractional growth rate of a single period.
func (r ProjectionRequest) PeriodRate() decimal.Decimal {
	return r.AnnualRatePercent.Div(hundred).Div(decimal.NewFromInt(int64(r.PeriodsPerYear)))
}

// ProjectSIP projects a systematic investment plan period by period.
//
// The contribution is invested at the start of each period and the balance
// then grows by the period rate, which reproduces the standard monthly SIP
// formula P * ((1+i)^n - 1) / i * (1+i). The balance is rounded to the
// currency unit with banker's rounding at every period boundary.
func ProjectSIP(req ProjectionRequest) (*ProjectionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	periods := req.Periods()
	growth := decimal.NewFromInt(1).Add(req.PeriodRate())

	principal := req.Principal.RoundBank(CurrencyPlaces)
	balance := principal
	paid := decimal.Zero
	schedule := make([]SchedulePoint, 0, periods)

	for p := 1; p <= periods; p++ {
		// each period pays the rounding difference of the running total
		total := req.contributionsThrough(p)
		balance = balance.Add(total.Sub(paid)).Mul(growth).RoundBank(CurrencyPlaces)
		paid = total
		schedule = append(schedule, SchedulePoint{Period: p, Balance: balance})
	}
	contributed := principal.Add(paid)

	return &ProjectionResult{
		FinalValue:       balance,
		TotalContributed: contributed,
		TotalGrowth:      balance.Sub(contributed),
		Schedule:         schedule,
	}, nil
}

// ProjectLumpSum projects a single upfront investment.
func ProjectLumpSum(principal, annualRatePercent decimal.Decimal, years, periodsPerYear int) (*ProjectionResult, error) {
	return ProjectSIP(ProjectionRequest{
		Principal:           principal,
		MonthlyContribution: decimal.Zero,
		AnnualRatePercent:   annualRatePercent,
		Years:               years,
		PeriodsPerYear:      periodsPerYear,
	})
}

// ReturnPercent is the growth relative to the contributed amount.
func ReturnPercent(res *ProjectionResult) decimal.Decimal {
	if res == nil || res.TotalContributed.IsZero() {
		return decimal.Zero
	}
	return res.TotalGrowth.Div(res.TotalContributed).Mul(hundred).RoundBank(CurrencyPlaces)
}
