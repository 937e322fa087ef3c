package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/sandevgo/finadvisor/pkg/retry"
	"github.com/shopspring/decimal"
)

// Exchange suffixes tried in order: NSE first, then BSE.
var exchangeSuffixes = []string{".NS", ".BO"}

var Periods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y"}

var ErrSymbolNotFound = errors.New("symbol not found")

var symbolRe = regexp.MustCompile(`^[A-Z0-9&^\-]{1,20}(\.(NS|BO))?$`)

type Quote struct {
	Symbol        string          `json:"symbol"`
	Currency      string          `json:"currency"`
	Period        string          `json:"period"`
	Price         decimal.Decimal `json:"price"`
	PrevClose     decimal.Decimal `json:"prev_close"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Closes        []float64       `json:"closes"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   core.QuoteCache
	retrier *retry.Retrier
}

// NewClient builds a Yahoo Finance chart API client. cache may be nil.
func NewClient(baseURL string, timeout time.Duration, cache core.QuoteCache, retrier *retry.Retrier) *Client {
	if retrier == nil {
		retrier = retry.NewRetrier(&retry.Config{
			MaxRetries:    2,
			BackoffFactor: 2,
			InitialDelay:  300 * time.Millisecond,
			MaxDelay:      3 * time.Second,
			Jitter:        50 * time.Millisecond,
		})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		retrier: retrier,
	}
}

func ValidPeriod(period string) bool {
	for _, p := range Periods {
		if p == period {
			return true
		}
	}
	return false
}

// Lookup returns a quote for an Indian listed symbol. A bare symbol is tried
// on NSE and then on BSE.
func (c *Client) Lookup(ctx context.Context, symbol, period string) (*Quote, error) {
	if period == "" {
		period = "1mo"
	}
	if !ValidPeriod(period) {
		return nil, core.NewInvalidInput("period", fmt.Sprintf("must be one of %s", strings.Join(Periods, ", ")))
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolRe.MatchString(symbol) {
		return nil, core.NewInvalidInput("symbol", fmt.Sprintf("%q is not a valid ticker", symbol))
	}

	candidates := []string{symbol}
	if !strings.HasSuffix(symbol, ".NS") && !strings.HasSuffix(symbol, ".BO") {
		candidates = candidates[:0]
		for _, s := range exchangeSuffixes {
			candidates = append(candidates, symbol+s)
		}
	}

	for _, cand := range candidates {
		q, err := c.fetchCached(ctx, cand, period)
		if errors.Is(err, ErrSymbolNotFound) {
			log.FromCtx(ctx).Debug().Str("symbol", cand).Msg("symbol not listed, trying next exchange")
			continue
		}
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
}

func (c *Client) fetchCached(ctx context.Context, symbol, period string) (*Quote, error) {
	key := symbol + "|" + period
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			var q Quote
			if err := json.Unmarshal(data, &q); err == nil {
				return &q, nil
			}
		}
	}

	var q *Quote
	err := c.retrier.Do(ctx, func() error {
		var err error
		q, err = c.fetch(ctx, symbol, period)
		if errors.Is(err, ErrSymbolNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(q); err == nil {
			if err := c.cache.Put(key, data); err != nil {
				log.FromCtx(ctx).Warn().Err(err).Msg("failed to cache quote")
			}
		}
	}
	return q, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func interval(period string) string {
	if period == "1d" {
		return "5m"
	}
	return "1d"
}

func (c *Client) fetch(ctx context.Context, symbol, period string) (*Quote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(period), interval(period))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSymbolNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return nil, retry.Permanent(fmt.Errorf("http %d: %s", resp.StatusCode, string(data)))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var cr chartResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if cr.Chart.Error != nil || len(cr.Chart.Result) == 0 {
		return nil, ErrSymbolNotFound
	}

	return buildQuote(symbol, period, cr), nil
}

func buildQuote(symbol, period string, cr chartResponse) *Quote {
	r := cr.Chart.Result[0]

	var closes []float64
	high, low := r.Meta.RegularMarketPrice, r.Meta.RegularMarketPrice
	if len(r.Indicators.Quote) > 0 {
		iq := r.Indicators.Quote[0]
		for _, v := range iq.Close {
			if v != nil {
				closes = append(closes, *v)
			}
		}
		for _, v := range iq.High {
			if v != nil && *v > high {
				high = *v
			}
		}
		for _, v := range iq.Low {
			if v != nil && (*v < low || low == 0) {
				low = *v
			}
		}
	}

	price := decimal.NewFromFloat(r.Meta.RegularMarketPrice).Round(2)
	prevF := r.Meta.PreviousClose
	if prevF == 0 {
		prevF = r.Meta.ChartPreviousClose
	}
	prev := decimal.NewFromFloat(prevF).Round(2)

	change := price.Sub(prev)
	changePct := decimal.Zero
	if !prev.IsZero() {
		changePct = change.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if r.Meta.Symbol != "" {
		symbol = r.Meta.Symbol
	}

	return &Quote{
		Symbol:        symbol,
		Currency:      r.Meta.Currency,
		Period:        period,
		Price:         price,
		PrevClose:     prev,
		Change:        change,
		ChangePercent: changePct,
		High:          decimal.NewFromFloat(high).Round(2),
		Low:           decimal.NewFromFloat(low).Round(2),
		Closes:        closes,
		FetchedAt:     time.Now().UTC(),
	}
}
