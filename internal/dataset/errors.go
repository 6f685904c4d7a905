package dataset

import "errors"

// Errors returned while building an Instrument. Each failure wraps exactly one
// of these, so callers can branch with errors.Is.
var (
	// ErrInvalidInstrument means the ticker is malformed or the provider has no data for it.
	ErrInvalidInstrument = errors.New("invalid instrument")

	// ErrInvalidDateFormat means a date is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrDateOutOfRange means a requested date falls outside the provider's coverage.
	ErrDateOutOfRange = errors.New("date out of range")

	// ErrInvalidDateRange means the start date is not strictly before the end date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrPrecondition means range bounds were checked before coverage was resolved.
	ErrPrecondition = errors.New("precondition failed")

	// ErrDataFetch means the provider could not be reached or answered with an HTTP failure.
	ErrDataFetch = errors.New("data fetch failed")

	// ErrEmptyDataset means the fetch or normalization produced no rows.
	ErrEmptyDataset = errors.New("empty dataset")
)
