// Package yahoo implements provider.Provider on the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0"
	name             = "yahoo"
)

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements provider.Provider using the Yahoo Finance chart API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	userAgent  string
	symbolMap  map[string]string // maps internal symbol to Yahoo ticker
	limiter    *rate.Limiter
	metrics    *provider.Metrics
}

var _ provider.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithSymbolAlias maps an internal symbol onto a Yahoo ticker.
func WithSymbolAlias(symbol, ticker string) Option {
	return func(c *Client) { c.symbolMap[symbol] = ticker }
}

// WithLimiter throttles outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMetrics records every request on m.
func WithMetrics(m *provider.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Yahoo Finance client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
		symbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return name }

func (c *Client) yahooSymbol(symbol string) string {
	if mapped, ok := c.symbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// MaxHistory fetches the full daily history of symbol.
func (c *Client) MaxHistory(ctx context.Context, symbol string) (frame.Table, error) {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	return c.fetchChart(ctx, provider.CallMaxHistory, symbol, q)
}

// Range fetches daily bars dated in [start, end).
func (c *Client) Range(ctx context.Context, symbol string, start, end time.Time) (frame.Table, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1d")
	return c.fetchChart(ctx, provider.CallRange, symbol, q)
}

func (c *Client) fetchChart(ctx context.Context, call, symbol string, q url.Values) (tbl frame.Table, err error) {
	started := time.Now()
	defer func() {
		outcome := provider.OutcomeOK
		switch {
		case err != nil:
			outcome = provider.OutcomeError
		case tbl.Empty():
			outcome = provider.OutcomeEmpty
		}
		c.metrics.Observe(name, call, outcome, time.Since(started))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// Wait fails early when the deadline is too close; report it as one.
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			} else if _, ok := ctx.Deadline(); ok {
				err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
			}
			return frame.Table{}, fmt.Errorf("yahoo rate limit: %w", err)
		}
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(c.yahooSymbol(symbol)), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return frame.Table{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return frame.Table{}, provider.Transport(name, "fetch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return frame.Table{}, provider.Transport(name, "read body", err)
	}

	if resp.StatusCode == http.StatusNotFound && isNotFound(body) {
		return frame.Table{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return frame.Table{}, &provider.StatusError{Provider: name, Code: resp.StatusCode, Body: string(body)}
	}
	return parseChart(body)
}

// isNotFound recognises Yahoo's answer for an unknown or delisted symbol.
func isNotFound(body []byte) bool {
	return gjson.GetBytes(body, "chart.error.code").String() == "Not Found"
}

// parseChart turns a chart response into a table with Yahoo's column names.
func parseChart(body []byte) (frame.Table, error) {
	if !gjson.ValidBytes(body) {
		return frame.Table{}, fmt.Errorf("yahoo decode: invalid json")
	}
	chart := gjson.GetBytes(body, "chart")
	if e := chart.Get("error"); e.Exists() && e.Type != gjson.Null {
		return frame.Table{}, fmt.Errorf("yahoo api error: %s", e.Get("description").String())
	}

	result := chart.Get("result.0")
	stamps := result.Get("timestamp").Array()
	if len(stamps) == 0 {
		return frame.Table{}, nil
	}

	loc := exchangeLocation(result.Get("meta"))
	quote := result.Get("indicators.quote.0")
	open := floats(quote.Get("open"), len(stamps))
	high := floats(quote.Get("high"), len(stamps))
	low := floats(quote.Get("low"), len(stamps))
	closes := floats(quote.Get("close"), len(stamps))
	volume := floats(quote.Get("volume"), len(stamps))
	adj := floats(result.Get("indicators.adjclose.0.adjclose"), len(stamps))

	index := make([]time.Time, 0, len(stamps))
	keep := make([]int, 0, len(stamps))
	for i, ts := range stamps {
		if math.IsNaN(open[i]) && math.IsNaN(high[i]) && math.IsNaN(low[i]) && math.IsNaN(closes[i]) {
			continue // skip null bars (holidays etc.)
		}
		local := time.Unix(ts.Int(), 0).In(loc)
		index = append(index, time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc))
		keep = append(keep, i)
	}

	return frame.New(index,
		frame.Column{Name: "Open", Values: pick(open, keep)},
		frame.Column{Name: "High", Values: pick(high, keep)},
		frame.Column{Name: "Low", Values: pick(low, keep)},
		frame.Column{Name: "Close", Values: pick(closes, keep)},
		frame.Column{Name: "Adj Close", Values: pick(adj, keep)},
		frame.Column{Name: "Volume", Values: pick(volume, keep)},
	)
}

// exchangeLocation resolves the exchange zone, falling back to the raw offset.
func exchangeLocation(meta gjson.Result) *time.Location {
	tz := meta.Get("exchangeTimezoneName").String()
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	offset := int(meta.Get("gmtoffset").Int())
	if offset == 0 && tz == "" {
		return time.UTC
	}
	return time.FixedZone(meta.Get("exchangeTimezoneShortName").String(), offset)
}

// floats reads a nullable numeric array; nulls and short arrays become NaN.
func floats(arr gjson.Result, n int) []float64 {
	out := make([]float64, n)
	vals := arr.Array()
	for i := range out {
		if i >= len(vals) || vals[i].Type != gjson.Number {
			out[i] = math.NaN()
			continue
		}
		out[i] = vals[i].Float()
	}
	return out
}

func pick(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
