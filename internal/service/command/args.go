package command

import (
	"strconv"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

var amountSuffixes = []struct {
	suffix string
	mult   int64
}{
	// plurals first, HasSuffix takes the first match
	{"crores", 10_000_000},
	{"crore", 10_000_000},
	{"cr", 10_000_000},
	{"lakhs", 100_000},
	{"lakh", 100_000},
	{"lacs", 100_000},
	{"lac", 100_000},
	{"l", 100_000},
	{"k", 1_000},
}

// parseAmount accepts plain numbers, thousands separators and the k, lakh
// and crore suffixes: "5000", "5,000", "5k", "1.5lakh", "2lakhs".
func parseAmount(field, s string) (decimal.Decimal, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.ReplaceAll(raw, ",", "")

	mult := int64(1)
	for _, sfx := range amountSuffixes {
		if strings.HasSuffix(raw, sfx.suffix) {
			raw = strings.TrimSpace(strings.TrimSuffix(raw, sfx.suffix))
			mult = sfx.mult
			break
		}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, core.NewInvalidInput(field, "must be a number, got "+strconv.Quote(s))
	}
	return d.Mul(decimal.NewFromInt(mult)), nil
}

func parseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, core.NewInvalidInput("rate", "must be a percentage, got "+strconv.Quote(s))
	}
	return d, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, core.NewInvalidInput(field, "must be a whole number, got "+strconv.Quote(s))
	}
	return n, nil
}
