// Package barsapi implements provider.Provider on a plain REST bars endpoint
// that returns one JSON object per trading day.
package barsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

const name = "barsapi"

// Client implements provider.Provider using the bars REST API.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Metrics *provider.Metrics
}

var _ provider.Provider = (*Client)(nil)

// New creates a new client with optional proxy support.
func New(baseURL, apiKey, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Name() string { return name }

// bar is the expected JSON shape from the bars API. Prices may be null.
type bar struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

func (c *Client) MaxHistory(ctx context.Context, symbol string) (frame.Table, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	return c.fetchBars(ctx, provider.CallMaxHistory, q)
}

func (c *Client) Range(ctx context.Context, symbol string, start, end time.Time) (frame.Table, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start", start.Format(frame.DateLayout))
	q.Set("end", end.Format(frame.DateLayout))
	return c.fetchBars(ctx, provider.CallRange, q)
}

func (c *Client) fetchBars(ctx context.Context, call string, q url.Values) (tbl frame.Table, err error) {
	started := time.Now()
	defer func() {
		outcome := provider.OutcomeOK
		if err != nil {
			outcome = provider.OutcomeError
		} else if tbl.Empty() {
			outcome = provider.OutcomeEmpty
		}
		c.Metrics.Observe(name, call, outcome, time.Since(started))
	}()

	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", c.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return frame.Table{}, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return frame.Table{}, provider.Transport(name, "fetch bars", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return frame.Table{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return frame.Table{}, &provider.StatusError{Provider: name, Code: resp.StatusCode, Body: string(body)}
	}

	var bars []bar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return frame.Table{}, fmt.Errorf("decode bars: %w", err)
	}
	if len(bars) == 0 {
		return frame.Table{}, nil
	}
	// Ensure chronological order; ISO dates sort lexically.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })

	dates := make([]string, len(bars))
	open := make([]float64, len(bars))
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	volume := make([]float64, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
		open[i] = value(b.Open)
		high[i] = value(b.High)
		low[i] = value(b.Low)
		closes[i] = value(b.Close)
		volume[i] = value(b.Volume)
	}
	return frame.NewWithDateColumn("Date", dates,
		frame.Column{Name: "Open", Values: open},
		frame.Column{Name: "High", Values: high},
		frame.Column{Name: "Low", Values: low},
		frame.Column{Name: "Close", Values: closes},
		frame.Column{Name: "Volume", Values: volume},
	)
}

func value(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
