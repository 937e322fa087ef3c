package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/finadvisor/internal/providers/market"
)

type QuoteLookup interface {
	Lookup(ctx context.Context, symbol, period string) (*market.Quote, error)
}

type QuoteCommand struct {
	quotes    QuoteLookup
	formatter *ResponseFormatter
}

func NewQuoteCommand(quotes QuoteLookup) *QuoteCommand {
	return &QuoteCommand{quotes: quotes, formatter: NewResponseFormatter()}
}

func (c *QuoteCommand) Name() string        { return "quote" }
func (c *QuoteCommand) Description() string { return "Latest price of an NSE/BSE stock" }
func (c *QuoteCommand) Usage() string {
	return fmt.Sprintf("/quote <symbol> [%s]", strings.Join(market.Periods, "|"))
}

func (c *QuoteCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 || len(args) > 2 {
		return c.formatter.Combine(
			c.formatter.Usage(c.Usage()),
			c.formatter.Examples([]string{"/quote RELIANCE", "/quote TCS 6mo"}),
		), nil
	}
	period := ""
	if len(args) == 2 {
		period = args[1]
	}

	q, err := c.quotes.Lookup(ctx, args[0], period)
	if errors.Is(err, market.ErrSymbolNotFound) {
		return c.formatter.Error(c.Name(), fmt.Errorf("%s is not listed on NSE or BSE", strings.ToUpper(args[0]))), nil
	}
	if err != nil {
		return "", err
	}

	sign := ""
	if q.Change.IsPositive() {
		sign = "+"
	}
	return c.formatter.Combine(
		c.formatter.Info(q.Symbol),
		c.formatter.Label("Price", fmt.Sprintf("%s %s", q.Currency, q.Price.StringFixed(2))),
		c.formatter.Label("Change", fmt.Sprintf("%s%s (%s%s%%)", sign, q.Change.StringFixed(2), sign, q.ChangePercent.StringFixed(2))),
		c.formatter.Label(fmt.Sprintf("Range (%s)", q.Period), fmt.Sprintf("%s - %s", q.Low.StringFixed(2), q.High.StringFixed(2))),
	), nil
}
