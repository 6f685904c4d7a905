package strategy

import (
	"fmt"
	"math"

	"InstrumentData/internal/calculator"
	"InstrumentData/internal/frame"
)

// RSIThreshold buys while the Wilder RSI is at or below Oversold and sells
// while it is at or above Overbought.
type RSIThreshold struct {
	Period     int
	Oversold   float64
	Overbought float64
	Column     string
}

var _ Strategy = RSIThreshold{}

// DefaultRSIThreshold is RSI(14) with the usual 30/70 bands.
func DefaultRSIThreshold() RSIThreshold {
	return RSIThreshold{Period: 14, Oversold: 30, Overbought: 70}
}

func (r RSIThreshold) Name() string {
	return fmt.Sprintf("rsi(%d,%.0f,%.0f)", r.Period, r.Oversold, r.Overbought)
}

func (r RSIThreshold) GenerateSignals(data frame.Table) (Signals, error) {
	if r.Oversold >= r.Overbought {
		return Signals{}, fmt.Errorf("strategy: oversold %.1f must be below overbought %.1f", r.Oversold, r.Overbought)
	}
	index, closes, err := prices(data, r.Column)
	if err != nil {
		return Signals{}, err
	}
	values, err := calculator.RollingRSI(closes, r.Period)
	if err != nil {
		return Signals{}, err
	}

	actions := make([]Signal, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
		case v <= r.Oversold:
			actions[i] = Buy
		case v >= r.Overbought:
			actions[i] = Sell
		}
	}
	return Signals{Index: index, Actions: actions}, nil
}
