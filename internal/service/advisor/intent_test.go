package advisor

import (
	"testing"

	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	p := risk.Aggressive

	tests := []struct {
		name  string
		query Query
		want  Intent
	}{
		{"question only", Query{Text: "What is an index fund?"}, RetrievalOnly},
		{"blank text with projection", Query{Projection: sipRequest()}, CalculationOnly},
		{"bare calculation phrasing", Query{Text: "calculate sip 5000 per month at 12% for 10 years", Projection: sipRequest()}, CalculationOnly},
		{"projection with question", Query{Text: "Is 12% a realistic return?", Projection: sipRequest()}, Mixed},
		{"profile only", Query{Profile: &p}, CalculationOnly},
		{"profile with question", Query{Text: "Which funds should I pick?", Profile: &p}, Mixed},
		{"numbers without structure", Query{Text: "5000 per month at 12% for 10 years"}, RetrievalOnly},
		{"no numbers is never bare", Query{Text: "what is sip", Projection: sipRequest()}, Mixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.query))
			assert.Equal(t, tt.want, ClassifyIntent(tt.query), "must be deterministic")
		})
	}
}

func TestExtractProjection(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		monthly   string
		principal string
		rate      string
		years     int
		periods   int
	}{
		{"monthly sip", "5000 per month at 12% for 10 years", "5000", "0", "12", 10, 12},
		{"currency and commas", "Rs. 10,000 monthly, 8.5 percent, 15 yrs", "10000", "0", "8.5", 15, 12},
		{"sip of", "What will a SIP of 2k give at 10% over 5 years?", "2000", "0", "10", 5, 12},
		{"lump sum in lakhs", "lump sum of 2 lakh at 8% for 5 years compounded annually", "0", "200000", "8", 5, 1},
		{"quarterly", "₹3000 a month at 9% for 20 years compounded quarterly", "3000", "0", "9", 20, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := ExtractProjection(tt.text)
			require.True(t, ok)

			assert.True(t, req.MonthlyContribution.Equal(decimal.RequireFromString(tt.monthly)), "monthly %s", req.MonthlyContribution)
			assert.True(t, req.Principal.Equal(decimal.RequireFromString(tt.principal)), "principal %s", req.Principal)
			assert.True(t, req.AnnualRatePercent.Equal(decimal.RequireFromString(tt.rate)), "rate %s", req.AnnualRatePercent)
			assert.Equal(t, tt.years, req.Years)
			assert.Equal(t, tt.periods, req.PeriodsPerYear)
		})
	}
}

func TestExtractProjection_Incomplete(t *testing.T) {
	for _, text := range []string{
		"What is a SIP?",
		"5000 per month for 10 years",
		"5000 per month at 12%",
		"12% for 10 years",
	} {
		_, ok := ExtractProjection(text)
		assert.False(t, ok, text)
	}
}

func TestIntentJSON(t *testing.T) {
	b, err := Mixed.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"mixed"`, string(b))
}
