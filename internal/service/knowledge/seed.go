package knowledge

import "github.com/sandevgo/finadvisor/internal/core"

// SeedSource tags the built-in documents in the store.
const SeedSource = "builtin"

type seedDoc struct {
	text     string
	category string
	topic    string
}

var seedDocs = []seedDoc{
	{
		text:     "SIP (Systematic Investment Plan) is a disciplined investment approach where you invest fixed amounts regularly in mutual funds. Best SIP returns in 2024 came from Mid-cap and Small-cap funds with 15-20% returns.",
		category: "investment", topic: "sip",
	},
	{
		text:     "Risk assessment involves evaluating risk tolerance, investment horizon, and financial goals. Conservative investors prefer debt funds (5-7% returns), moderate prefer hybrid (8-12%), aggressive prefer equity (12-20%).",
		category: "risk", topic: "assessment",
	},
	{
		text:     "Emergency fund should cover 6-12 months of expenses. Keep it in liquid funds or savings accounts. Rule: Income - Savings = Expenses, not Income - Expenses = Savings.",
		category: "planning", topic: "emergency_fund",
	},
	{
		text:     "Tax saving instruments: ELSS (80C, 1.5L limit), PPF (7.1% returns), NPS (additional 50k), Health insurance (80D). ELSS has 3-year lock-in and highest return potential.",
		category: "tax", topic: "saving",
	},
	{
		text:     "Stock market indices: NIFTY 50 represents top 50 Indian companies, SENSEX represents top 30. Invest through index funds for diversification. Average long-term return: 12-14% annually.",
		category: "stocks", topic: "indices",
	},
	{
		text:     "Retirement planning: Start early with Rule of 72 (72/return rate = years to double). Invest 15-20% of income. Use mix of EPF, NPS, mutual funds. Target corpus: 25-30x annual expenses.",
		category: "retirement", topic: "planning",
	},
	{
		text:     "Debt management: Follow 50-30-20 rule (50% needs, 30% wants, 20% savings). Pay high-interest debt first. Credit card APR: 36-42%. Personal loan: 10-16%. Home loan: 8-9%.",
		category: "debt", topic: "management",
	},
	{
		text:     "Gold investment options: Physical gold, Gold ETFs (low cost), Sovereign Gold Bonds (2.5% interest + price appreciation). Historical return: 9-10% annually.",
		category: "gold", topic: "investment",
	},
}

func (d seedDoc) metadata() map[string]string {
	return map[string]string{
		core.MetaSource:   SeedSource,
		core.MetaCategory: d.category,
		core.MetaTopic:    d.topic,
	}
}
