package strategy

import (
	"fmt"
	"math"

	"InstrumentData/internal/calculator"
	"InstrumentData/internal/frame"
)

// MovingAverageCrossover buys when the fast SMA crosses above the slow SMA and
// sells when it crosses back below.
type MovingAverageCrossover struct {
	Fast   int
	Slow   int
	Column string
}

var _ Strategy = MovingAverageCrossover{}

func (m MovingAverageCrossover) Name() string {
	return fmt.Sprintf("sma_cross(%d,%d)", m.Fast, m.Slow)
}

func (m MovingAverageCrossover) GenerateSignals(data frame.Table) (Signals, error) {
	if m.Fast <= 0 || m.Slow <= 0 || m.Fast >= m.Slow {
		return Signals{}, fmt.Errorf("strategy: fast period %d must be positive and below slow period %d", m.Fast, m.Slow)
	}
	index, closes, err := prices(data, m.Column)
	if err != nil {
		return Signals{}, err
	}
	fast, err := calculator.RollingSMA(closes, m.Fast)
	if err != nil {
		return Signals{}, err
	}
	slow, err := calculator.RollingSMA(closes, m.Slow)
	if err != nil {
		return Signals{}, err
	}

	actions := make([]Signal, len(closes))
	for i := 1; i < len(closes); i++ {
		if anyNaN(fast[i-1], slow[i-1], fast[i], slow[i]) {
			continue
		}
		switch {
		case fast[i-1] <= slow[i-1] && fast[i] > slow[i]:
			actions[i] = Buy
		case fast[i-1] >= slow[i-1] && fast[i] < slow[i]:
			actions[i] = Sell
		}
	}
	return Signals{Index: index, Actions: actions}, nil
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
