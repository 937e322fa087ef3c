package risk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/shopspring/decimal"
)

type Profile int

const (
	Conservative Profile = iota + 1
	Moderate
	Aggressive
)

func (p Profile) String() string {
	switch p {
	case Conservative:
		return "Conservative"
	case Moderate:
		return "Moderate"
	case Aggressive:
		return "Aggressive"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

func (p Profile) Valid() bool {
	return p >= Conservative && p <= Aggressive
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseProfile(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseProfile accepts a profile name in any case.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative", "low":
		return Conservative, nil
	case "moderate", "medium":
		return Moderate, nil
	case "aggressive", "high":
		return Aggressive, nil
	}
	return 0, core.NewInvalidInput("profile", fmt.Sprintf("unknown risk profile %q", s))
}

type Allocation struct {
	AssetClass string          `json:"asset_class"`
	Percent    decimal.Decimal `json:"percent"`
}

// ReturnRange is the expected annual return band in percent.
type ReturnRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// Midpoint is the representative rate used for illustrations.
func (r ReturnRange) Midpoint() decimal.Decimal {
	return r.Low.Add(r.High).Div(decimal.NewFromInt(2))
}

func (r ReturnRange) String() string {
	return fmt.Sprintf("%s-%s%%", r.Low, r.High)
}

func pct(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Allocation returns the suggested portfolio split. Percentages sum to 100.
func (p Profile) Allocation() []Allocation {
	switch p {
	case Conservative:
		return []Allocation{
			{AssetClass: "Debt funds and fixed deposits", Percent: pct(70)},
			{AssetClass: "Large-cap equity", Percent: pct(20)},
			{AssetClass: "Gold", Percent: pct(10)},
		}
	case Moderate:
		return []Allocation{
			{AssetClass: "Debt funds", Percent: pct(40)},
			{AssetClass: "Diversified equity", Percent: pct(45)},
			{AssetClass: "Gold and international funds", Percent: pct(15)},
		}
	case Aggressive:
		return []Allocation{
			{AssetClass: "Debt funds", Percent: pct(20)},
			{AssetClass: "Equity (large, mid and small cap)", Percent: pct(70)},
			{AssetClass: "International funds", Percent: pct(10)},
		}
	}
	return nil
}

func (p Profile) ExpectedReturn() ReturnRange {
	switch p {
	case Conservative:
		return ReturnRange{Low: pct(5), High: pct(7)}
	case Moderate:
		return ReturnRange{Low: pct(8), High: pct(12)}
	case Aggressive:
		return ReturnRange{Low: pct(12), High: pct(20)}
	}
	return ReturnRange{}
}

// Recommendation is a short, profile-specific guidance text.
func (p Profile) Recommendation() string {
	switch p {
	case Conservative:
		return "Focus on capital preservation: debt funds, fixed deposits and a small large-cap equity share. " +
			"Keep an emergency fund of six months of expenses before investing."
	case Moderate:
		return "Balance growth and stability with a mix of diversified equity and debt funds. " +
			"Monthly SIPs in index or flexi-cap funds suit a horizon of five years or more."
	case Aggressive:
		return "Aim for long-term growth with a high equity share across large, mid and small caps. " +
			"Expect sharp drawdowns and stay invested for ten years or more."
	}
	return ""
}
