// Package strategy turns a normalized price dataset into a series of trading
// actions.
package strategy

import (
	"fmt"
	"time"

	"InstrumentData/internal/frame"
)

// Signal is the action for one row.
type Signal int8

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = 1
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Hold:
		return "HOLD"
	default:
		return fmt.Sprintf("Signal(%d)", int8(s))
	}
}

// Signals is an action series aligned with the dataset index.
type Signals struct {
	Index   []time.Time
	Actions []Signal
}

// Len returns the number of rows.
func (s Signals) Len() int { return len(s.Actions) }

// Count returns how many rows carry the given action.
func (s Signals) Count(sig Signal) int {
	n := 0
	for _, a := range s.Actions {
		if a == sig {
			n++
		}
	}
	return n
}

// Table returns the signals as a single-column "signal" table.
func (s Signals) Table() (frame.Table, error) {
	vals := make([]float64, len(s.Actions))
	for i, a := range s.Actions {
		vals[i] = float64(a)
	}
	return frame.New(s.Index, frame.Column{Name: "signal", Values: vals})
}

// Strategy produces one signal per dataset row.
type Strategy interface {
	Name() string
	GenerateSignals(data frame.Table) (Signals, error)
}

// DefaultPriceColumn is the column strategies read when none is configured.
const DefaultPriceColumn = "close"

func prices(data frame.Table, column string) ([]time.Time, []float64, error) {
	if column == "" {
		column = DefaultPriceColumn
	}
	if data.Empty() {
		return nil, nil, fmt.Errorf("strategy: empty dataset")
	}
	vals, err := data.Float(column)
	if err != nil {
		return nil, nil, fmt.Errorf("strategy: %w", err)
	}
	dates, err := data.Dates()
	if err != nil {
		return nil, nil, fmt.Errorf("strategy: %w", err)
	}
	return append([]time.Time(nil), dates...), vals, nil
}
