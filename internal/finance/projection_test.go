package finance

import (
	"fmt"
	"testing"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestProjectSIP_MonthlyPlan(t *testing.T) {
	res, err := ProjectSIP(ProjectionRequest{
		Principal:           decimal.Zero,
		MonthlyContribution: d("5000"),
		AnnualRatePercent:   d("12"),
		Years:               10,
		PeriodsPerYear:      12,
	})
	require.NoError(t, err)

	final, _ := res.FinalValue.Float64()
	assert.InDelta(t, 1161695.0, final, 1.0)
	assert.True(t, res.TotalContributed.Equal(d("600000")))
	assert.True(t, res.FinalValue.Equal(res.TotalContributed.Add(res.TotalGrowth)))
	assert.Len(t, res.Schedule, 120)
	assert.True(t, res.Schedule[119].Balance.Equal(res.FinalValue))
}

func TestProjectSIP_MatchesClosedForm(t *testing.T) {
	res, err := ProjectSIP(ProjectionRequest{
		MonthlyContribution: d("5000"),
		AnnualRatePercent:   d("12"),
		Years:               10,
		PeriodsPerYear:      12,
	})
	require.NoError(t, err)

	closed, err := SIPFutureValue(d("5000"), d("12"), 10)
	require.NoError(t, err)

	diff := res.FinalValue.Sub(closed).Abs()
	assert.True(t, diff.LessThan(d("1")), "iterative %s vs closed form %s", res.FinalValue, closed)
}

func TestProjectLumpSum(t *testing.T) {
	res, err := ProjectLumpSum(d("100000"), d("10"), 2, 1)
	require.NoError(t, err)

	assert.True(t, res.FinalValue.Equal(d("121000")), "got %s", res.FinalValue)
	assert.True(t, res.TotalContributed.Equal(d("100000")))
	assert.True(t, res.TotalGrowth.Equal(d("21000")))
	assert.Len(t, res.Schedule, 2)
}

func TestProjectSIP_ZeroRate(t *testing.T) {
	res, err := ProjectSIP(ProjectionRequest{
		Principal:           d("1000"),
		MonthlyContribution: d("100"),
		AnnualRatePercent:   decimal.Zero,
		Years:               1,
		PeriodsPerYear:      12,
	})
	require.NoError(t, err)

	assert.True(t, res.FinalValue.Equal(d("2200")))
	assert.True(t, res.TotalGrowth.IsZero())
}

func TestProjectSIP_ScheduleNonDecreasing(t *testing.T) {
	res, err := ProjectSIP(ProjectionRequest{
		Principal:           d("25000"),
		MonthlyContribution: d("1500"),
		AnnualRatePercent:   d("7.5"),
		Years:               5,
		PeriodsPerYear:      4,
	})
	require.NoError(t, err)
	require.Len(t, res.Schedule, 20)

	prev := decimal.Zero
	for _, p := range res.Schedule {
		assert.True(t, p.Balance.GreaterThanOrEqual(prev), "period %d dropped", p.Period)
		prev = p.Balance
	}
	assert.True(t, res.FinalValue.GreaterThanOrEqual(res.TotalContributed))
}

func TestProjectionRequest_PeriodContribution(t *testing.T) {
	req := ProjectionRequest{MonthlyContribution: d("5000"), PeriodsPerYear: 4}
	assert.True(t, req.PeriodContribution().Equal(d("15000")))

	req.PeriodsPerYear = 12
	assert.True(t, req.PeriodContribution().Equal(d("5000")))
}

func TestProjectSIP_InvalidInput(t *testing.T) {
	valid := ProjectionRequest{
		Principal:           d("1000"),
		MonthlyContribution: d("100"),
		AnnualRatePercent:   d("8"),
		Years:               5,
		PeriodsPerYear:      12,
	}

	tests := []struct {
		name   string
		mutate func(r *ProjectionRequest)
		field  string
	}{
		{"negative principal", func(r *ProjectionRequest) { r.Principal = d("-1") }, "principal"},
		{"negative contribution", func(r *ProjectionRequest) { r.MonthlyContribution = d("-5") }, "monthly_contribution"},
		{"negative rate", func(r *ProjectionRequest) { r.AnnualRatePercent = d("-0.1") }, "annual_rate_percent"},
		{"zero years", func(r *ProjectionRequest) { r.Years = 0 }, "years"},
		{"zero periods", func(r *ProjectionRequest) { r.PeriodsPerYear = 0 }, "periods_per_year"},
		{"horizon too long", func(r *ProjectionRequest) { r.Years = 2000 }, "years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			res, err := ProjectSIP(req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, core.IsInvalidInput(err))

			var inv *core.InvalidInputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.field, inv.Field)
		})
	}
}

func TestReturnPercent(t *testing.T) {
	res, err := ProjectLumpSum(d("100000"), d("10"), 2, 1)
	require.NoError(t, err)
	assert.True(t, ReturnPercent(res).Equal(d("21")))

	assert.True(t, ReturnPercent(nil).IsZero())
}

func TestProjectSIP_CompoundingFrequencies(t *testing.T) {
	for _, ppy := range []int{1, 4, 7, 12, 52, 365} {
		t.Run(fmt.Sprintf("ppy=%d", ppy), func(t *testing.T) {
			flat, err := ProjectSIP(ProjectionRequest{
				Principal:           d("1000"),
				MonthlyContribution: d("5000"),
				AnnualRatePercent:   decimal.Zero,
				Years:               30,
				PeriodsPerYear:      ppy,
			})
			require.NoError(t, err)
			assert.Len(t, flat.Schedule, 30*ppy)
			assert.True(t, flat.TotalContributed.Equal(d("1801000")), "contributed %s", flat.TotalContributed)
			assert.True(t, flat.FinalValue.Equal(d("1801000")), "final %s", flat.FinalValue)
			assert.True(t, flat.TotalGrowth.IsZero())

			growing, err := ProjectSIP(ProjectionRequest{
				Principal:           d("1000"),
				MonthlyContribution: d("333.33"),
				AnnualRatePercent:   d("9.5"),
				Years:               7,
				PeriodsPerYear:      ppy,
			})
			require.NoError(t, err)
			assert.True(t, growing.TotalContributed.Equal(d("28999.72")), "contributed %s", growing.TotalContributed)
			assert.True(t, growing.FinalValue.Equal(growing.TotalContributed.Add(growing.TotalGrowth)))

			sip, err := ProjectSIP(ProjectionRequest{
				Principal:           d("50000"),
				MonthlyContribution: decimal.Zero,
				AnnualRatePercent:   d("8"),
				Years:               5,
				PeriodsPerYear:      ppy,
			})
			require.NoError(t, err)
			lump, err := ProjectLumpSum(d("50000"), d("8"), 5, ppy)
			require.NoError(t, err)
			assert.True(t, lump.FinalValue.Equal(sip.FinalValue), "lump %s sip %s", lump.FinalValue, sip.FinalValue)
			assert.True(t, lump.TotalContributed.Equal(d("50000")))
			require.Len(t, sip.Schedule, len(lump.Schedule))
			for i := range sip.Schedule {
				assert.True(t, sip.Schedule[i].Balance.Equal(lump.Schedule[i].Balance))
			}
		})
	}
}

func TestProjectionRequest_WithDefaults(t *testing.T) {
	req := ProjectionRequest{MonthlyContribution: d("5000"), AnnualRatePercent: d("12"), Years: 10}.WithDefaults()
	assert.Equal(t, DefaultPeriodsPerYear, req.PeriodsPerYear)

	req.PeriodsPerYear = 4
	assert.Equal(t, 4, req.WithDefaults().PeriodsPerYear)
}
