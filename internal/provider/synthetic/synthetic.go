// Package synthetic provides deterministic generated price history for offline
// runs and tests.
package synthetic

import (
	"context"
	"math"
	"time"

	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

// Instrument describes one generated symbol.
type Instrument struct {
	BasePrice float64
	Since     time.Time // first trading day, inclusive
	Until     time.Time // last trading day, inclusive
}

// Provider returns controllable generated weekday bars.
type Provider struct {
	Instruments map[string]Instrument
}

var _ provider.Provider = (*Provider)(nil)

// New creates a provider serving the given instruments.
func New(instruments map[string]Instrument) *Provider {
	return &Provider{Instruments: instruments}
}

func (p *Provider) Name() string { return "synthetic" }

func (p *Provider) MaxHistory(ctx context.Context, symbol string) (frame.Table, error) {
	inst, ok := p.Instruments[symbol]
	if !ok {
		return frame.Table{}, nil
	}
	return generateBars(inst, inst.Since, inst.Until.AddDate(0, 0, 1))
}

func (p *Provider) Range(ctx context.Context, symbol string, start, end time.Time) (frame.Table, error) {
	inst, ok := p.Instruments[symbol]
	if !ok {
		return frame.Table{}, nil
	}
	if start.Before(inst.Since) {
		start = inst.Since
	}
	if limit := inst.Until.AddDate(0, 0, 1); end.After(limit) {
		end = limit
	}
	return generateBars(inst, start, end)
}

// generateBars emits one bar per weekday in [from, to). Prices depend only on
// the day offset from Since so repeated calls agree.
func generateBars(inst Instrument, from, to time.Time) (frame.Table, error) {
	var (
		index                           []time.Time
		open, high, low, closes, volume []float64
	)
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		n := d.Sub(inst.Since).Hours() / 24
		p := inst.BasePrice * (1 + 0.0005*n + 0.02*math.Sin(n/7))
		index = append(index, d)
		open = append(open, p*0.999)
		high = append(high, p*1.005)
		low = append(low, p*0.995)
		closes = append(closes, p)
		volume = append(volume, 1000000)
	}
	if len(index) == 0 {
		return frame.Table{}, nil
	}
	return frame.New(index,
		frame.Column{Name: "Open", Values: open},
		frame.Column{Name: "High", Values: high},
		frame.Column{Name: "Low", Values: low},
		frame.Column{Name: "Close", Values: closes},
		frame.Column{Name: "Volume", Values: volume},
	)
}
