package advisor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/shopspring/decimal"
)

type Intent int

const (
	CalculationOnly Intent = iota + 1
	RetrievalOnly
	Mixed
)

func (i Intent) String() string {
	switch i {
	case CalculationOnly:
		return "calculation"
	case RetrievalOnly:
		return "retrieval"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// ClassifyIntent decides how a query is served. Structured projection or
// profile data triggers computation; the free text decides whether knowledge
// retrieval is needed as well.
func ClassifyIntent(q Query) Intent {
	structured := q.Projection != nil || q.Profile != nil
	text := strings.TrimSpace(q.Text)

	if !structured {
		return RetrievalOnly
	}
	if text == "" || isBareCalculation(text) {
		return CalculationOnly
	}
	return Mixed
}

var calcVocabulary = map[string]bool{
	"calculate": true, "compute": true, "project": true, "projection": true, "estimate": true,
	"sip": true, "lumpsum": true, "lump": true, "sum": true, "fv": true, "future": true, "value": true,
	"monthly": true, "month": true, "months": true, "pm": true, "per": true, "every": true,
	"year": true, "years": true, "yr": true, "yrs": true, "yearly": true, "annually": true, "quarterly": true,
	"rate": true, "return": true, "returns": true, "interest": true, "percent": true, "pa": true,
	"compounded": true, "compounding": true, "invest": true, "investing": true, "investment": true,
	"principal": true, "contribution": true, "corpus": true, "amount": true, "total": true, "final": true,
	"rs": true, "inr": true, "k": true, "lakh": true, "lakhs": true, "crore": true, "cr": true,
	"how": true, "much": true, "will": true, "be": true, "become": true, "grow": true, "growth": true,
	"get": true, "i": true, "my": true, "me": true, "if": true, "of": true, "at": true, "for": true,
	"a": true, "an": true, "the": true, "in": true, "with": true, "and": true, "over": true, "to": true, "is": true,
	"p": true, "annum": true, "each": true, "compound": true, "calculator": true, "what": true, "on": true, "after": true,
}

var (
	wordRe   = regexp.MustCompile(`[\p{L}]+|[\d][\d,]*(?:\.\d+)?`)
	numberRe = regexp.MustCompile(`\d`)
)

// isBareCalculation reports whether text is only calculation phrasing:
// numbers plus calculation vocabulary, nothing that asks for advice.
func isBareCalculation(text string) bool {
	lower := strings.ToLower(text)
	if !numberRe.MatchString(lower) {
		return false
	}
	for _, w := range wordRe.FindAllString(lower, -1) {
		if numberRe.MatchString(w[:1]) {
			continue
		}
		if !calcVocabulary[w] {
			return false
		}
	}
	return true
}

const amountPattern = `(?:rs\.?|inr|₹)?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|thousand|lakhs?|l|crores?|cr)?\b`

var (
	monthlyRe = regexp.MustCompile(amountPattern + `\s*(?:/-\s*)?(?:per\s+month|a\s+month|every\s+month|each\s+month|monthly|/\s*month|pm|p\.m\.)`)
	sipOfRe   = regexp.MustCompile(`(?:sip|monthly\s+(?:investment|contribution|sip))\s+(?:of\s+)?` + amountPattern)
	lumpRe    = regexp.MustCompile(`(?:lump\s*-?\s*sum|one[\s-]time|principal|invest(?:ing|ment)?)\s+(?:of\s+)?` + amountPattern)
	rateRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent)`)
	yearsRe   = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)\b`)
)

var multipliers = map[string]int64{
	"k": 1_000, "thousand": 1_000,
	"l": 100_000, "lakh": 100_000, "lakhs": 100_000,
	"cr": 10_000_000, "crore": 10_000_000, "crores": 10_000_000,
}

func parseAmount(num, unit string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(num, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	if m, ok := multipliers[unit]; ok {
		d = d.Mul(decimal.NewFromInt(m))
	}
	return d, true
}

// ExtractProjection recognises plans written in prose, e.g. "5000 per month
// at 12% for 10 years" or "lump sum of 2 lakh at 8% for 5 years". Rate and
// horizon are required, plus a monthly amount or a lump sum.
func ExtractProjection(text string) (*finance.ProjectionRequest, bool) {
	lower := strings.ToLower(text)

	rm := rateRe.FindStringSubmatch(lower)
	ym := yearsRe.FindStringSubmatch(lower)
	if rm == nil || ym == nil {
		return nil, false
	}
	rate, err := decimal.NewFromString(rm[1])
	if err != nil {
		return nil, false
	}
	years, err := decimal.NewFromString(ym[1])
	if err != nil || !years.IsPositive() || !years.IsInteger() {
		return nil, false
	}

	req := &finance.ProjectionRequest{
		Principal:           decimal.Zero,
		MonthlyContribution: decimal.Zero,
		AnnualRatePercent:   rate,
		Years:               int(years.IntPart()),
		PeriodsPerYear:      periodsFromText(lower),
	}

	found := false
	if m := monthlyRe.FindStringSubmatch(lower); m != nil {
		if amt, ok := parseAmount(m[1], m[2]); ok {
			req.MonthlyContribution, found = amt, true
		}
	} else if m := sipOfRe.FindStringSubmatch(lower); m != nil {
		if amt, ok := parseAmount(m[1], m[2]); ok {
			req.MonthlyContribution, found = amt, true
		}
	}
	if m := lumpRe.FindStringSubmatch(lower); m != nil && !req.MonthlyContribution.IsPositive() {
		if amt, ok := parseAmount(m[1], m[2]); ok {
			req.Principal, found = amt, true
		}
	}

	if !found {
		return nil, false
	}
	return req, true
}

func periodsFromText(lower string) int {
	switch {
	case strings.Contains(lower, "compounded quarterly") || strings.Contains(lower, "quarterly compounding"):
		return 4
	case strings.Contains(lower, "compounded annually") || strings.Contains(lower, "compounded yearly") ||
		strings.Contains(lower, "annual compounding"):
		return 1
	default:
		return finance.DefaultPeriodsPerYear
	}
}
