// Package app wires configuration to the provider, dataset builder, chart
// export and strategy for the dataset command.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"InstrumentData/internal/calculator"
	"InstrumentData/internal/config"
	"InstrumentData/internal/dataset"
	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
	"InstrumentData/internal/provider/barsapi"
	"InstrumentData/internal/provider/synthetic"
	"InstrumentData/internal/provider/yahoo"
	"InstrumentData/internal/strategy"
)

// NewProvider builds the provider named by cfg.DataSource.Provider.
func NewProvider(cfg *config.Config, reg prometheus.Registerer) (provider.Provider, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		metrics, err := provider.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("provider metrics: %w", err)
		}
		opts := []yahoo.Option{
			yahoo.WithHTTPClient(httpClient(ds.Timeout, cfg.Proxy)),
			yahoo.WithLimiter(rate.NewLimiter(rate.Limit(ds.RequestsPerSecond), ds.Burst)),
			yahoo.WithMetrics(metrics),
		}
		if ds.BaseURL != "" {
			opts = append(opts, yahoo.WithBaseURL(ds.BaseURL))
		}
		return yahoo.New(opts...), nil
	case "barsapi":
		metrics, err := provider.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("provider metrics: %w", err)
		}
		c := barsapi.New(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.Timeout)
		c.Metrics = metrics
		return c, nil
	case "synthetic":
		until := time.Now().UTC().Truncate(24 * time.Hour)
		return synthetic.New(map[string]synthetic.Instrument{
			cfg.Instrument.Symbol: {
				BasePrice: 100,
				Since:     time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC),
				Until:     until,
			},
		}), nil
	}
	return nil, fmt.Errorf("unknown provider %q", ds.Provider)
}

func httpClient(timeout time.Duration, proxyURL string) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// NewStrategy returns the configured strategy, or nil when none is set.
func NewStrategy(cfg config.StrategyConfig) strategy.Strategy {
	switch cfg.Name {
	case "sma_cross":
		return strategy.MovingAverageCrossover{Fast: cfg.FastPeriod, Slow: cfg.SlowPeriod}
	case "rsi":
		return strategy.RSIThreshold{Period: cfg.RSIPeriod, Oversold: cfg.Oversold, Overbought: cfg.Overbought}
	}
	return nil
}

// Runner builds the dataset and its side outputs. One Refresh call is one
// complete rebuild.
type Runner struct {
	Config   *config.Config
	Provider provider.Provider
	Strategy strategy.Strategy
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Refresh builds the dataset, writes the chart workbook when configured and
// summarises strategy signals.
func (r *Runner) Refresh(ctx context.Context) error {
	_, err := r.Build(ctx)
	return err
}

// Build is Refresh that also returns the dataset.
func (r *Runner) Build(ctx context.Context) (*dataset.Instrument, error) {
	logger := r.logger()
	in := r.Config.Instrument

	inst, err := dataset.New(ctx, r.Provider, in.Symbol, in.StartDate, in.EndDate, dataset.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	data := inst.HistoricalData()
	first, last, _ := data.Bounds()
	earliest, latest := inst.Coverage()
	logger.Info("dataset ready",
		slog.String("symbol", inst.Symbol()),
		slog.Int("rows", data.Len()),
		slog.Any("columns", data.Columns()),
		slog.String("first", first.Format(frame.DateLayout)),
		slog.String("last", last.Format(frame.DateLayout)),
		slog.String("coverage_start", earliest.Format(frame.DateLayout)),
		slog.String("coverage_end", latest.Format(frame.DateLayout)),
	)

	if out := r.Config.Chart.Output; out != "" {
		if err := writeChart(inst, out); err != nil {
			return nil, err
		}
		logger.Info("chart written", slog.String("path", out))
	}

	r.logIndicators(logger, data)

	if r.Strategy != nil {
		sig, err := r.Strategy.GenerateSignals(data)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", r.Strategy.Name(), err)
		}
		logger.Info("signals generated",
			slog.String("strategy", r.Strategy.Name()),
			slog.Int("buy", sig.Count(strategy.Buy)),
			slog.Int("sell", sig.Count(strategy.Sell)),
			slog.Int("hold", sig.Count(strategy.Hold)),
		)
	}

	r.logRequestCounts(logger)
	return inst, nil
}

func writeChart(inst *dataset.Instrument, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := inst.GenerateLinePlot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// logIndicators reports the latest RSI and slow SMA of the close column.
// Indicators without enough history are left out.
func (r *Runner) logIndicators(logger *slog.Logger, data frame.Table) {
	closes, err := data.Float("close")
	if err != nil {
		return
	}
	st := r.Config.Strategy
	attrs := []any{slog.String("symbol", r.Config.Instrument.Symbol)}
	if rsi, err := calculator.CalculateRSI(closes, st.RSIPeriod); err == nil && !math.IsNaN(rsi) {
		attrs = append(attrs, slog.Float64("rsi", rsi))
	}
	if sma, err := calculator.CalculateSMA(closes, st.SlowPeriod); err == nil && !math.IsNaN(sma) {
		attrs = append(attrs, slog.Float64("sma", sma), slog.Int("sma_period", st.SlowPeriod))
	}
	if len(attrs) > 1 {
		logger.Info("latest indicators", attrs...)
	}
}

func (r *Runner) logRequestCounts(logger *slog.Logger) {
	if r.Gatherer == nil {
		return
	}
	mfs, err := r.Gatherer.Gather()
	if err != nil {
		logger.Warn("gather metrics", slog.Any("error", err))
		return
	}
	for _, mf := range mfs {
		if mf.GetName() != "provider_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			attrs := []any{slog.Float64("count", m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			logger.Debug("provider requests", attrs...)
		}
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
