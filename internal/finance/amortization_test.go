package finance

import (
	"testing"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMI(t *testing.T) {
	emi, err := EMI(d("100000"), d("12"), 12)
	require.NoError(t, err)
	assert.True(t, emi.Equal(d("8884.88")), "got %s", emi)
}

func TestAmortize_ClosesAtZero(t *testing.T) {
	res, err := Amortize(d("100000"), d("12"), 12)
	require.NoError(t, err)
	require.Len(t, res.Schedule, 12)

	principalSum := decimal.Zero
	interestSum := decimal.Zero
	for _, inst := range res.Schedule {
		principalSum = principalSum.Add(inst.Principal)
		interestSum = interestSum.Add(inst.Interest)
		assert.True(t, inst.Payment.Equal(inst.Principal.Add(inst.Interest)))
	}

	last := res.Schedule[len(res.Schedule)-1]
	assert.True(t, last.Balance.IsZero(), "residual balance %s", last.Balance)
	assert.True(t, principalSum.Equal(d("100000")))
	assert.True(t, res.TotalInterest.Equal(interestSum))
	assert.True(t, res.TotalPaid.Equal(principalSum.Add(interestSum)))
}

func TestAmortize_ZeroRate(t *testing.T) {
	res, err := Amortize(d("1200"), decimal.Zero, 12)
	require.NoError(t, err)

	assert.True(t, res.MonthlyPayment.Equal(d("100")))
	assert.True(t, res.TotalInterest.IsZero())
	assert.True(t, res.TotalPaid.Equal(d("1200")))
}

func TestAmortize_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		months    int
	}{
		{"zero principal", decimal.Zero, d("10"), 12},
		{"negative rate", d("1000"), d("-1"), 12},
		{"zero months", d("1000"), d("10"), 0},
		{"too many months", d("1000"), d("10"), MaxLoanMonths + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Amortize(tt.principal, tt.rate, tt.months)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}
