package risk

import (
	"fmt"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/shopspring/decimal"
)

// Band upper bounds (inclusive) of the weighted score.
const (
	ConservativeMax = 22
	ModerateMax     = 36
)

// Response holds one answer per question, in questionnaire order.
type Response []int

func (r Response) Validate() error {
	if len(r) != len(Questions) {
		return core.NewInvalidInput("answers", fmt.Sprintf("expected %d answers, got %d", len(Questions), len(r)))
	}
	for i, a := range r {
		if a < MinAnswer || a > MaxAnswer {
			return core.NewInvalidInput(
				"answers",
				fmt.Sprintf("answer %d to %q must be between %d and %d", a, Questions[i].ID, MinAnswer, MaxAnswer),
			)
		}
	}
	return nil
}

// Score returns the weighted questionnaire score.
func Score(resp Response) (int, error) {
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	score := 0
	for i, a := range resp {
		score += a * Questions[i].Weight
	}
	return score, nil
}

// Classify maps a questionnaire response to a risk profile.
func Classify(resp Response) (Profile, error) {
	score, err := Score(resp)
	if err != nil {
		return 0, err
	}
	return ProfileForScore(score), nil
}

func ProfileForScore(score int) Profile {
	switch {
	case score <= ConservativeMax:
		return Conservative
	case score <= ModerateMax:
		return Moderate
	default:
		return Aggressive
	}
}

// Illustrate projects a monthly SIP at the profile's representative return.
func Illustrate(p Profile, monthly decimal.Decimal, years int) (*finance.ProjectionResult, error) {
	if !p.Valid() {
		return nil, core.NewInvalidInput("profile", "unknown risk profile")
	}
	return finance.ProjectSIP(finance.ProjectionRequest{
		MonthlyContribution: monthly,
		AnnualRatePercent:   p.ExpectedReturn().Midpoint(),
		Years:               years,
		PeriodsPerYear:      finance.DefaultPeriodsPerYear,
	})
}
