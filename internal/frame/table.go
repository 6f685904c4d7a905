// Package frame holds the tabular price data passed between providers, the
// dataset builder and its consumers.
package frame

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DateLayout is the ISO calendar date layout used across the module.
const DateLayout = "2006-01-02"

// Table is a set of named columns with an optional date index.
// Index is nil when the source carries its dates in a column instead.
type Table struct {
	Index []time.Time
	Data  dataframe.DataFrame
}

// Column is one named numeric series used to assemble a Table.
type Column struct {
	Name   string
	Values []float64
}

// New builds an indexed table from numeric columns. Every column must have
// len(index) values; NaN marks a missing observation.
func New(index []time.Time, cols ...Column) (Table, error) {
	ss := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		if len(c.Values) != len(index) {
			return Table{}, fmt.Errorf("column %q has %d values, index has %d", c.Name, len(c.Values), len(index))
		}
		ss = append(ss, series.New(c.Values, series.Float, c.Name))
	}
	return FromSeries(index, ss...)
}

// NewWithDateColumn builds an unindexed table whose dates live in the named
// string column, as some providers deliver them.
func NewWithDateColumn(dateCol string, dates []string, cols ...Column) (Table, error) {
	ss := make([]series.Series, 0, len(cols)+1)
	ss = append(ss, series.New(dates, series.String, dateCol))
	for _, c := range cols {
		if len(c.Values) != len(dates) {
			return Table{}, fmt.Errorf("column %q has %d values, %d dates", c.Name, len(c.Values), len(dates))
		}
		ss = append(ss, series.New(c.Values, series.Float, c.Name))
	}
	return FromSeries(nil, ss...)
}

// FromSeries assembles a table from prepared series. Every series must have
// the same length, matching index when index is non-nil.
func FromSeries(index []time.Time, ss ...series.Series) (Table, error) {
	if len(ss) == 0 {
		return Table{Index: index}, nil
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("build frame: %w", df.Err)
	}
	if index != nil && df.Nrow() != len(index) {
		return Table{}, fmt.Errorf("frame has %d rows, index has %d", df.Nrow(), len(index))
	}
	return Table{Index: index, Data: df}, nil
}

// Len returns the number of rows.
func (t Table) Len() int {
	if t.Data.Ncol() == 0 {
		return len(t.Index)
	}
	return t.Data.Nrow()
}

// Empty reports whether the table has no rows or no columns.
func (t Table) Empty() bool {
	return t.Data.Ncol() == 0 || t.Data.Nrow() == 0
}

// Columns returns the column names in order.
func (t Table) Columns() []string {
	if t.Data.Ncol() == 0 {
		return nil
	}
	return t.Data.Names()
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, n := range t.Columns() {
		if n == name {
			return true
		}
	}
	return false
}

// Float returns a copy of a numeric column; missing values are NaN.
func (t Table) Float(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return t.Data.Col(name).Float(), nil
}

// Copy returns a deep copy that shares nothing with t.
func (t Table) Copy() Table {
	out := Table{}
	if t.Index != nil {
		out.Index = append([]time.Time(nil), t.Index...)
	}
	if t.Data.Ncol() > 0 {
		out.Data = t.Data.Copy()
	}
	return out
}

// Dates returns the row dates, from the index when present and otherwise by
// parsing a "Date" or "date" column.
func (t Table) Dates() ([]time.Time, error) {
	if t.Index != nil {
		return t.Index, nil
	}
	for _, name := range t.Columns() {
		if strings.ToLower(name) == "date" {
			return ParseDates(t.Data.Col(name).Records())
		}
	}
	return nil, fmt.Errorf("table has neither an index nor a date column")
}

// ParseDates parses date strings as calendar dates or RFC 3339 timestamps.
func ParseDates(records []string) ([]time.Time, error) {
	out := make([]time.Time, len(records))
	for i, r := range records {
		tm, err := ParseDate(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = tm
	}
	return out, nil
}

// ParseDate accepts the layouts providers commonly use for row dates.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{DateLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", s)
}

// Bounds returns the first and last dates of an indexed table.
func (t Table) Bounds() (first, last time.Time, ok bool) {
	if len(t.Index) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = t.Index[0], t.Index[0]
	for _, tm := range t.Index[1:] {
		if tm.Before(first) {
			first = tm
		}
		if tm.After(last) {
			last = tm
		}
	}
	return first, last, true
}

// IsMissing reports whether v marks a missing observation.
func IsMissing(v float64) bool { return math.IsNaN(v) }
