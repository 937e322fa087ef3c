package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/questionnaire"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	riskAnswers string
	riskMonthly string
	riskYears   int
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Find your risk profile with a short questionnaire",
	Example: `  finadvisor risk
  finadvisor risk --answers 3,4,3,2,4 --monthly 10000 --years 15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if riskAnswers == "" {
			res, err := questionnaire.Run(calcCurrency)
			if err != nil {
				return err
			}
			fmt.Print(questionnaire.Summary(*res, calcCurrency))
			return nil
		}

		var resp risk.Response
		for _, part := range strings.Split(riskAnswers, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return fmt.Errorf("invalid answer %q", part)
			}
			resp = append(resp, n)
		}

		score, err := risk.Score(resp)
		if err != nil {
			return err
		}
		result := questionnaire.Result{
			Answers: resp,
			Score:   score,
			Profile: risk.ProfileForScore(score),
		}

		if riskMonthly != "" {
			monthly, err := decimal.NewFromString(riskMonthly)
			if err != nil {
				return fmt.Errorf("invalid monthly amount %q", riskMonthly)
			}
			illustration, err := risk.Illustrate(result.Profile, monthly, riskYears)
			if err != nil {
				return err
			}
			result.Monthly = monthly
			result.Years = riskYears
			result.Illustration = illustration
		}

		fmt.Print(questionnaire.Summary(result, calcCurrency))
		return nil
	},
}

func init() {
	riskCmd.Flags().StringVarP(&riskAnswers, "answers", "a", "", fmt.Sprintf("comma separated answers (%d-%d) instead of the interactive questionnaire", risk.MinAnswer, risk.MaxAnswer))
	riskCmd.Flags().StringVar(&riskMonthly, "monthly", "", "monthly amount for an illustration")
	riskCmd.Flags().IntVar(&riskYears, "years", 10, "illustration horizon in years")
	riskCmd.Flags().StringVar(&calcCurrency, "currency", "INR", "currency label")
	rootCmd.AddCommand(riskCmd)
}
