package risk

const (
	MinAnswer = 1
	MaxAnswer = 5
)

// Question is a single questionnaire item. Options are ordered from the most
// cautious (answer 1) to the most risk tolerant (answer 5).
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Weight  int      `json:"weight"`
}

// Questions is the fixed questionnaire. Answer order matches this slice.
var Questions = []Question{
	{
		ID:   "goal",
		Text: "What is your primary investment goal?",
		Options: []string{
			"Protect my capital",
			"Regular income with some safety",
			"Balanced growth and income",
			"Long-term growth",
			"Maximum growth",
		},
		Weight: 2,
	},
	{
		ID:   "horizon",
		Text: "How long do you plan to stay invested?",
		Options: []string{
			"Less than 1 year",
			"1 to 3 years",
			"3 to 5 years",
			"5 to 10 years",
			"More than 10 years",
		},
		Weight: 2,
	},
	{
		ID:   "drawdown",
		Text: "Your portfolio falls 20% in a month. What do you do?",
		Options: []string{
			"Sell everything",
			"Sell some of it",
			"Hold and wait",
			"Hold and review my plan",
			"Buy more",
		},
		Weight: 3,
	},
	{
		ID:   "experience",
		Text: "How much investing experience do you have?",
		Options: []string{
			"None",
			"Fixed deposits and savings only",
			"Some mutual funds",
			"Stocks and mutual funds",
			"Active trading or derivatives",
		},
		Weight: 1,
	},
	{
		ID:   "income",
		Text: "How stable is your income?",
		Options: []string{
			"Very unstable",
			"Somewhat unstable",
			"Moderately stable",
			"Stable",
			"Very stable with surplus",
		},
		Weight: 2,
	},
}

func totalWeight() int {
	sum := 0
	for _, q := range Questions {
		sum += q.Weight
	}
	return sum
}

// MinScore and MaxScore bound the weighted score.
func MinScore() int { return totalWeight() * MinAnswer }
func MaxScore() int { return totalWeight() * MaxAnswer }
