package advisor

import (
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/shopspring/decimal"
)

const (
	GenerationFailedMessage = "Unable to generate advisory text right now."
	ReducedContextNote      = "Note: the knowledge base could not be reached, so this answer uses reduced context."
	EmptyContextNote        = "Note: nothing in the knowledge base matched this question, so this answer uses reduced context."
	NoContextMessage        = "I could not find relevant information in the knowledge base for this question."

	excerptLength = 300
)

// describeFigures renders the computed projection and profile as plain text.
func describeFigures(resp *Response, currency string) string {
	var parts []string

	if res := resp.Projection; res != nil {
		years := ""
		if n := len(res.Schedule); n > 0 {
			years = fmt.Sprintf(" after %d periods", n)
		}
		parts = append(parts, fmt.Sprintf(
			"Projected value%s: %s. Total invested: %s. Estimated growth: %s (%s%% on amount invested).",
			years,
			FormatMoney(res.FinalValue, currency),
			FormatMoney(res.TotalContributed, currency),
			FormatMoney(res.TotalGrowth, currency),
			finance.ReturnPercent(res).StringFixed(2),
		))
	}

	if p := resp.Profile; p != nil {
		var alloc []string
		for _, a := range resp.Allocation {
			alloc = append(alloc, fmt.Sprintf("%s%% %s", a.Percent.String(), a.AssetClass))
		}
		parts = append(parts, fmt.Sprintf(
			"Risk profile: %s (expected return %s a year). Suggested allocation: %s. %s",
			p, p.ExpectedReturn(), strings.Join(alloc, ", "), p.Recommendation(),
		))
	}

	return strings.Join(parts, "\n")
}

func offlineNarrative(figures string, chunks []core.ScoredChunk) string {
	var parts []string
	if figures != "" {
		parts = append(parts, figures)
	}
	if excerpt := contextExcerpt(chunks); excerpt != "" {
		parts = append(parts, "Based on the knowledge base: "+excerpt)
	} else if figures == "" {
		parts = append(parts, NoContextMessage)
	}
	return strings.Join(parts, "\n\n")
}

func failedNarrative(figures string, chunks []core.ScoredChunk) string {
	parts := []string{GenerationFailedMessage}
	if figures != "" {
		parts = append(parts, figures)
	}
	if excerpt := contextExcerpt(chunks); excerpt != "" {
		parts = append(parts, "Relevant information: "+excerpt)
	}
	return strings.Join(parts, "\n\n")
}

func contextExcerpt(chunks []core.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, strings.TrimSpace(c.Chunk.Text))
	}
	joined := strings.Join(texts, " ")

	runes := []rune(joined)
	if len(runes) <= excerptLength {
		return joined
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}

// FormatMoney renders an amount with two decimals and thousands separators,
// prefixed with the currency code.
func FormatMoney(d decimal.Decimal, currency string) string {
	s := d.Abs().StringFixedBank(finance.CurrencyPlaces)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + frac
	if d.IsNegative() {
		out = "-" + out
	}
	if currency != "" {
		out = currency + " " + out
	}
	return out
}
