package dataset

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gota/gota/series"

	"InstrumentData/internal/frame"
)

const (
	volumeColumn = "volume"
	dateColumn   = "date"
)

// Normalize converts a raw provider table into the canonical dataset shape:
// snake_case column names, no volume column, gaps forward-filled and a
// zone-free date index. Tables already in that shape come back unchanged.
func Normalize(raw frame.Table) (frame.Table, error) {
	if raw.Empty() {
		return frame.Table{}, fmt.Errorf("%w: no rows returned by the provider", ErrEmptyDataset)
	}

	var (
		cols    []series.Series
		dateCol *series.Series
	)
	for _, name := range raw.Data.Names() {
		canon := columnName(name)
		if canon == volumeColumn {
			continue
		}
		filled, err := fillSeries(raw.Data.Col(name), canon)
		if err != nil {
			return frame.Table{}, err
		}
		if raw.Index == nil && canon == dateColumn && dateCol == nil {
			dateCol = &filled
			continue
		}
		cols = append(cols, filled)
	}

	index := raw.Index
	if index == nil {
		if dateCol == nil {
			return frame.Table{}, fmt.Errorf("normalize: table has no date index and no date column")
		}
		parsed, err := frame.ParseDates(dateCol.Records())
		if err != nil {
			return frame.Table{}, fmt.Errorf("normalize: date column: %w", err)
		}
		index = parsed
	}
	index = naiveIndex(index)

	out, err := frame.FromSeries(index, cols...)
	if err != nil {
		return frame.Table{}, fmt.Errorf("normalize: %w", err)
	}
	if out.Empty() {
		return frame.Table{}, fmt.Errorf("%w: nothing left after normalization", ErrEmptyDataset)
	}
	return out, nil
}

// naiveIndex returns a copy of index with every timestamp moved to the same
// wall clock in UTC, so exchange-local dates compare directly with parsed ones.
func naiveIndex(index []time.Time) []time.Time {
	out := make([]time.Time, len(index))
	for i, t := range index {
		out[i] = stripZone(t)
	}
	return out
}

// columnName lowercases a provider column name and joins words with underscores.
func columnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// fillSeries forward-fills s and renames it, keeping its element type.
func fillSeries(s series.Series, name string) (series.Series, error) {
	var out series.Series
	if s.Type() == series.Float {
		out = series.New(ForwardFill(s.Float()), series.Float, name)
	} else {
		records := s.Records()
		missing := s.IsNaN()
		for i := 1; i < len(records); i++ {
			if missing[i] && !missing[i-1] {
				records[i] = records[i-1]
				missing[i] = false
			}
		}
		out = series.New(records, s.Type(), name)
	}
	if out.Err != nil {
		return series.Series{}, fmt.Errorf("normalize column %q: %w", name, out.Err)
	}
	return out, nil
}

// ForwardFill replaces each NaN with the closest earlier non-NaN value. Leading
// NaNs have nothing to copy and stay missing.
func ForwardFill(values []float64) []float64 {
	out := make([]float64, len(values))
	last := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = last
			continue
		}
		out[i] = v
		last = v
	}
	return out
}
