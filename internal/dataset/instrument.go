// Package dataset builds a validated, normalized price history for a single
// instrument from a market-data provider.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"InstrumentData/internal/chart"
	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

// Instrument is the validated input triple plus its normalized history.
// It is fully populated by New and never changes afterwards.
type Instrument struct {
	provider provider.Provider
	logger   *slog.Logger
	fetch    fetchFunc

	symbol   string
	startRaw string
	endRaw   string
	start    time.Time
	end      time.Time

	earliest      time.Time
	latest        time.Time
	coverageKnown bool

	data frame.Table
}

// Option customizes an Instrument.
type Option func(*Instrument)

// WithLogger sets the logger for fetch notices. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(i *Instrument) {
		if l != nil {
			i.logger = l
		}
	}
}

// New validates symbol and the [startDate, endDate] range against the
// provider's coverage, downloads the range and normalizes it. Any failure
// aborts construction.
func New(ctx context.Context, p provider.Provider, symbol, startDate, endDate string, opts ...Option) (*Instrument, error) {
	if p == nil {
		return nil, fmt.Errorf("dataset: nil provider")
	}
	i := &Instrument{
		provider: p,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		symbol:   symbol,
		startRaw: startDate,
		endRaw:   endDate,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.fetch = withFetchNotice(i.logger, p.Name(), p.Range)

	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}
	var err error
	if i.start, err = parseDate(startDate, "start date"); err != nil {
		return nil, err
	}
	if i.end, err = parseDate(endDate, "end date"); err != nil {
		return nil, err
	}
	if err := validateOrder(i.start, i.end); err != nil {
		return nil, err
	}

	if err := i.resolveCoverage(ctx); err != nil {
		return nil, err
	}
	if err := i.validateBounds(); err != nil {
		return nil, err
	}

	raw, err := i.FetchRawData(ctx)
	if err != nil {
		return nil, err
	}
	if i.data, err = Normalize(raw); err != nil {
		return nil, err
	}
	return i, nil
}

// Symbol returns the ticker the dataset was built for.
func (i *Instrument) Symbol() string { return i.symbol }

// StartDate returns the requested start date as given.
func (i *Instrument) StartDate() string { return i.startRaw }

// EndDate returns the requested end date as given.
func (i *Instrument) EndDate() string { return i.endRaw }

// Coverage returns the first and last dates the provider holds for the symbol.
func (i *Instrument) Coverage() (earliest, latest time.Time) { return i.earliest, i.latest }

// HistoricalData returns a copy of the normalized dataset.
func (i *Instrument) HistoricalData() frame.Table { return i.data.Copy() }

// FetchRawData downloads the validated range again and returns it as the
// provider delivered it. The stored dataset is left untouched.
func (i *Instrument) FetchRawData(ctx context.Context) (frame.Table, error) {
	return i.fetch(ctx, i.symbol, i.start, i.end)
}

// GenerateLinePlot writes the dataset as a spreadsheet line chart to w.
func (i *Instrument) GenerateLinePlot(w io.Writer) error {
	if i.data.Empty() {
		return fmt.Errorf("%w: no historical data to plot for %s", ErrEmptyDataset, i.symbol)
	}
	if err := chart.WriteLineChart(w, "Historical Data for "+i.symbol, i.data); err != nil {
		return fmt.Errorf("plot %s: %w", i.symbol, err)
	}
	return nil
}
