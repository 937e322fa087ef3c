package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/providers/market"
	"github.com/sandevgo/finadvisor/internal/service/ui"
	"github.com/spf13/cobra"
)

var quotePeriod string

var quoteCmd = &cobra.Command{
	Use:     "quote <symbol>",
	Short:   "Look up an NSE/BSE stock",
	Example: "  finadvisor quote RELIANCE --period 6mo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := bootstrap(cmd)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		q, err := a.quotes(ctx).Lookup(ctx, args[0], quotePeriod)
		if err != nil {
			return err
		}

		style := ui.GainStyle
		if q.Change.IsNegative() {
			style = ui.LossStyle
		}
		fmt.Println(ui.TitleStyle.Render(q.Symbol))
		fmt.Printf("Price:  %s %s  %s\n", q.Currency, q.Price.StringFixed(2),
			style.Render(fmt.Sprintf("%s (%s%%)", q.Change.StringFixed(2), q.ChangePercent.StringFixed(2))))
		fmt.Printf("Range:  %s - %s over %s\n", q.Low.StringFixed(2), q.High.StringFixed(2), q.Period)
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVarP(&quotePeriod, "period", "p", "1mo", "history period: "+strings.Join(market.Periods, ", "))
	rootCmd.AddCommand(quoteCmd)
}
