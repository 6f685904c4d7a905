package calculator

import (
	"errors"
	"math"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes. Returns 50.0 if data is insufficient.
func CalculateRSI(closes []float64, period int) (float64, error) {
	series, err := RollingRSI(closes, period)
	if err != nil {
		return 0, err
	}
	if len(series) == 0 || math.IsNaN(series[len(series)-1]) {
		return 50.0, nil // default when data insufficient
	}
	return series[len(series)-1], nil
}

// RollingRSI returns the Wilder RSI at every row. Leading NaN closes are
// skipped; the first period rows after them have no value and are NaN.
func RollingRSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}

	first := 0
	for first < len(closes) && math.IsNaN(closes[first]) {
		first++
	}
	if len(closes)-first < period+1 {
		return out, nil
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := first + 1; i <= first+period; i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[first+period] = rsi(avgGain, avgLoss)

	// Wilder smoothing for remaining closes
	for i := first + period + 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsi(avgGain, avgLoss)
	}
	return out, nil
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func rsi(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
