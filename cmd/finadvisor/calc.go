package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	calcCurrency     string
	calcRate         string
	calcYears        int
	calcPeriods      int
	calcPrincipal    string
	calcShowSchedule bool
)

var sipCmd = &cobra.Command{
	Use:     "sip <monthly amount>",
	Short:   "Project a monthly SIP",
	Example: "  finadvisor sip 5000 --rate 12 --years 10",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		monthly, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		rate, err := decimal.NewFromString(calcRate)
		if err != nil {
			return fmt.Errorf("invalid rate %q", calcRate)
		}
		principal := decimal.Zero
		if calcPrincipal != "" {
			if principal, err = decimal.NewFromString(calcPrincipal); err != nil {
				return fmt.Errorf("invalid principal %q", calcPrincipal)
			}
		}

		res, err := finance.ProjectSIP(finance.ProjectionRequest{
			Principal:           principal,
			MonthlyContribution: monthly,
			AnnualRatePercent:   rate,
			Years:               calcYears,
			PeriodsPerYear:      calcPeriods,
		})
		if err != nil {
			return err
		}
		printProjection(res, calcPeriods)
		return nil
	},
}

var lumpSumCmd = &cobra.Command{
	Use:     "lumpsum <amount>",
	Short:   "Project a one-time investment",
	Example: "  finadvisor lumpsum 100000 --rate 10 --years 5",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		rate, err := decimal.NewFromString(calcRate)
		if err != nil {
			return fmt.Errorf("invalid rate %q", calcRate)
		}
		res, err := finance.ProjectLumpSum(amount, rate, calcYears, calcPeriods)
		if err != nil {
			return err
		}
		printProjection(res, calcPeriods)

		doubling, err := finance.RuleOf72(rate)
		if err == nil {
			fmt.Printf("Doubles roughly every %s years (rule of 72)\n", doubling)
		}
		return nil
	},
}

var emiMonths int

var emiCmd = &cobra.Command{
	Use:     "emi <principal>",
	Short:   "Monthly installment and amortization of a loan",
	Example: "  finadvisor emi 2500000 --rate 8.5 --months 240",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid principal %q", args[0])
		}
		rate, err := decimal.NewFromString(calcRate)
		if err != nil {
			return fmt.Errorf("invalid rate %q", calcRate)
		}
		res, err := finance.Amortize(principal, rate, emiMonths)
		if err != nil {
			return err
		}

		fmt.Printf("Monthly payment: %s\n", advisor.FormatMoney(res.MonthlyPayment, calcCurrency))
		fmt.Printf("Total paid:      %s\n", advisor.FormatMoney(res.TotalPaid, calcCurrency))
		fmt.Printf("Total interest:  %s\n", advisor.FormatMoney(res.TotalInterest, calcCurrency))

		if calcShowSchedule {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "month\tpayment\tinterest\tprincipal\tbalance\t")
			for _, in := range res.Schedule {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", in.Month,
					in.Payment.StringFixed(2), in.Interest.StringFixed(2), in.Principal.StringFixed(2), in.Balance.StringFixed(2))
			}
			return w.Flush()
		}
		return nil
	},
}

var budgetCmd = &cobra.Command{
	Use:     "budget <monthly income>",
	Short:   "Split a monthly income with the 50/30/20 rule",
	Example: "  finadvisor budget 85000",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid income %q", args[0])
		}
		plan, err := finance.PlanBudget(income)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		rows := []struct {
			label string
			value decimal.Decimal
		}{
			{"Needs (50%)", plan.Needs},
			{"Wants (30%)", plan.Wants},
			{"Savings (20%)", plan.Savings},
			{"Emergency fund target", plan.EmergencyFund},
			{"Suggested SIP", plan.SuggestedSIP},
			{"Insurance budget", plan.InsuranceBudget},
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\n", r.label, advisor.FormatMoney(r.value, calcCurrency))
		}
		return w.Flush()
	},
}

func printProjection(res *finance.ProjectionResult, periodsPerYear int) {
	fmt.Printf("Invested:     %s\n", advisor.FormatMoney(res.TotalContributed, calcCurrency))
	fmt.Printf("Growth:       %s\n", advisor.FormatMoney(res.TotalGrowth, calcCurrency))
	fmt.Printf("Final value:  %s\n", advisor.FormatMoney(res.FinalValue, calcCurrency))
	fmt.Printf("Return:       %s%%\n", finance.ReturnPercent(res).StringFixed(2))

	if !calcShowSchedule {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "year\tbalance\t")
	for _, p := range res.Schedule {
		if p.Period%periodsPerYear == 0 {
			fmt.Fprintf(w, "%d\t%s\t\n", p.Period/periodsPerYear, p.Balance.StringFixed(2))
		}
	}
	w.Flush()
}

func init() {
	for _, c := range []*cobra.Command{sipCmd, lumpSumCmd, emiCmd, budgetCmd} {
		c.Flags().StringVar(&calcCurrency, "currency", "INR", "currency label")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{sipCmd, lumpSumCmd, emiCmd} {
		c.Flags().StringVarP(&calcRate, "rate", "r", "12", "annual rate in percent")
		c.Flags().BoolVarP(&calcShowSchedule, "schedule", "s", false, "print the schedule")
	}
	for _, c := range []*cobra.Command{sipCmd, lumpSumCmd} {
		c.Flags().IntVarP(&calcYears, "years", "y", 10, "investment horizon in years")
		c.Flags().IntVar(&calcPeriods, "periods-per-year", finance.DefaultPeriodsPerYear, "compounding periods per year")
	}
	sipCmd.Flags().StringVar(&calcPrincipal, "principal", "", "amount invested upfront")
	emiCmd.Flags().IntVarP(&emiMonths, "months", "m", 240, "loan tenure in months")
}
