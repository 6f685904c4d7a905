package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

// validateSymbol requires at least one cased letter and no lowercase ones.
func validateSymbol(symbol string) error {
	cased := false
	for _, r := range symbol {
		if unicode.IsLower(r) {
			cased = false
			break
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	if !cased {
		return fmt.Errorf("%w: instrument must be a string in uppercase, got %q", ErrInvalidInstrument, symbol)
	}
	return nil
}

// parseDate parses an ISO calendar date; label names the field in errors.
func parseDate(s, label string) (time.Time, error) {
	tm, err := time.Parse(frame.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be in 'YYYY-MM-DD' format, got %q", ErrInvalidDateFormat, label, s)
	}
	return stripZone(tm), nil
}

// stripZone re-expresses t's wall clock in UTC. UTC times are already naive
// and come back unchanged.
func stripZone(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// resolveCoverage asks the provider for the full history of the symbol and
// records its first and last dates.
func (i *Instrument) resolveCoverage(ctx context.Context) error {
	hist, err := i.provider.MaxHistory(ctx, i.symbol)
	if err != nil {
		if isContextError(ctx, err) {
			return fmt.Errorf("resolve coverage for %s: %w", i.symbol, err)
		}
		if errors.Is(err, provider.ErrTransport) {
			return fmt.Errorf("%w: resolve coverage for %s: %w", ErrDataFetch, i.symbol, err)
		}
		return fmt.Errorf("%w: error validating ticker symbol %q: %w", ErrInvalidInstrument, i.symbol, err)
	}
	if hist.Empty() {
		return fmt.Errorf("%w: ticker symbol %q is invalid or has no data", ErrInvalidInstrument, i.symbol)
	}

	dates, err := hist.Dates()
	if err != nil {
		return fmt.Errorf("%w: error validating ticker symbol %q: %w", ErrInvalidInstrument, i.symbol, err)
	}
	earliest, latest := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	i.earliest = stripZone(earliest)
	i.latest = stripZone(latest)
	i.coverageKnown = true
	return nil
}

// isContextError reports whether err comes from cancellation or a deadline,
// either carried in err or signalled by ctx itself.
func isContextError(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// validateBounds checks the parsed range against the resolved coverage window.
func (i *Instrument) validateBounds() error {
	if !i.coverageKnown {
		return fmt.Errorf("%w: earliest and latest date info must be available, validate the ticker first", ErrPrecondition)
	}
	if i.start.Before(i.earliest) {
		return fmt.Errorf("%w: start date must be on or after the earliest available date for the stock: %s",
			ErrDateOutOfRange, i.earliest.Format(frame.DateLayout))
	}
	if i.end.After(i.latest) {
		return fmt.Errorf("%w: end date must be on or before the latest available date for the stock: %s",
			ErrDateOutOfRange, i.latest.Format(frame.DateLayout))
	}
	return nil
}

// validateOrder requires start strictly before end.
func validateOrder(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start date must be earlier than end date", ErrInvalidDateRange)
	}
	return nil
}

