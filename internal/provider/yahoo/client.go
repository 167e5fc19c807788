// Package yahoo implements the Yahoo Finance quote backend.
//
// Two endpoints are used: the quote-summary API for the pricing snapshot and
// the chart API (with dividend events) for the payout history. Dividend
// histories change rarely, so they are cached on disk between invocations;
// the cache is transparent and best-effort.
package yahoo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"resty.dev/v3"

	"pricegate/internal/provider"
	"pricegate/internal/provider/cache"
)

const (
	quoteSummaryPath = "/v10/finance/quoteSummary/{symbol}"
	chartPath        = "/v8/finance/chart/{symbol}"

	// summaryModules selects the quote-summary modules carrying the seven
	// pricing fields and the quote currency.
	summaryModules = "financialData,summaryDetail"

	userAgent = "pricegate/1.0"
)

// Client fetches quotes and dividend histories from Yahoo Finance.
type Client struct {
	http  *resty.Client
	cache *cache.Disk // nil disables caching
}

// Option customizes a Client.
type Option func(*Client)

// WithCache attaches an on-disk TTL cache for dividend histories. A cache
// that cannot be created is reported but the client still works without it.
func WithCache(c *cache.Disk) Option {
	return func(cl *Client) { cl.cache = c }
}

// New builds a Client against baseURL with the given per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", userAgent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the backend in logs and error messages.
func (c *Client) Name() string { return "yahoo" }

// Ping reports whether the client's local resources (the cache directory)
// are healthy. It deliberately does not call the remote API.
func (c *Client) Ping() error {
	if c == nil {
		return fmt.Errorf("yahoo: nil client")
	}
	return c.cache.Ping()
}

// Close releases the underlying HTTP transport.
func (c *Client) Close() {
	if c != nil && c.http != nil {
		_ = c.http.Close()
	}
}

// wireValue is Yahoo's numeric wrapper: {"raw": 1.23, "fmt": "1.23"}.
// Missing values arrive as an empty object, leaving Raw nil.
type wireValue struct {
	Raw *float64 `json:"raw"`
}

type summaryEnvelope struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData *struct {
				CurrentPrice      wireValue `json:"currentPrice"`
				TargetLowPrice    wireValue `json:"targetLowPrice"`
				TargetMeanPrice   wireValue `json:"targetMeanPrice"`
				TargetMedianPrice wireValue `json:"targetMedianPrice"`
			} `json:"financialData"`
			SummaryDetail *struct {
				FiftyTwoWeekLow  wireValue `json:"fiftyTwoWeekLow"`
				FiftyTwoWeekHigh wireValue `json:"fiftyTwoWeekHigh"`
				Currency         string    `json:"currency"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Events *struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Quote fetches the pricing snapshot for symbol. A symbol unknown upstream
// surfaces as an error; a known symbol with sparse data surfaces as a Quote
// whose missing fields are nil (see Quote.HasData).
func (c *Client) Quote(ctx context.Context, symbol string) (*provider.Quote, error) {
	var env summaryEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("modules", summaryModules).
		SetResult(&env).
		Get(quoteSummaryPath)
	if err != nil {
		return nil, fmt.Errorf("yahoo: quote %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: quote %s: unexpected status %d", symbol, resp.StatusCode())
	}
	if env.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo: quote %s: %w", symbol, env.QuoteSummary.Error)
	}
	if len(env.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: quote %s: empty result", symbol)
	}

	r := env.QuoteSummary.Result[0]
	q := &provider.Quote{Symbol: symbol}
	if fd := r.FinancialData; fd != nil {
		q.CurrentPrice = fd.CurrentPrice.Raw
		q.TargetLowPrice = fd.TargetLowPrice.Raw
		q.TargetMeanPrice = fd.TargetMeanPrice.Raw
		q.TargetMedianPrice = fd.TargetMedianPrice.Raw
	}
	if sd := r.SummaryDetail; sd != nil {
		q.FiftyTwoWeekLow = sd.FiftyTwoWeekLow.Raw
		q.FiftyTwoWeekHigh = sd.FiftyTwoWeekHigh.Raw
		q.Currency = sd.Currency
	}
	return q, nil
}

// Dividends fetches the dividend payments of the last two years for symbol,
// oldest first. Results are served from the on-disk cache when fresh.
func (c *Client) Dividends(ctx context.Context, symbol string) ([]provider.Dividend, error) {
	var cached []provider.Dividend
	if c.cache.Get(cacheKey(symbol), &cached) {
		return cached, nil
	}

	var env chartEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    "2y",
			"interval": "1mo",
			"events":   "div",
		}).
		SetResult(&env).
		Get(chartPath)
	if err != nil {
		return nil, fmt.Errorf("yahoo: dividends %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: dividends %s: unexpected status %d", symbol, resp.StatusCode())
	}
	if env.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: dividends %s: %w", symbol, env.Chart.Error)
	}
	if len(env.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: dividends %s: empty result", symbol)
	}

	var out []provider.Dividend
	if ev := env.Chart.Result[0].Events; ev != nil {
		for _, d := range ev.Dividends {
			out = append(out, provider.Dividend{
				Amount: d.Amount,
				PaidAt: time.Unix(d.Date, 0).UTC(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })

	c.cache.Put(cacheKey(symbol), out)
	return out, nil
}

func cacheKey(symbol string) string { return "dividends-" + symbol }
