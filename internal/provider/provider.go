// Package provider defines the market-data source contract shared by every
// concrete provider.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"InstrumentData/internal/frame"
)

// ErrTransport marks a network or HTTP failure talking to a provider.
var ErrTransport = errors.New("provider transport failure")

// Provider supplies daily price history for one symbol at a time.
//
//go:generate mockgen -package=dataset_test -destination=../dataset/mock_provider_test.go -source=provider.go
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// MaxHistory returns every row the provider holds for symbol. An unknown
	// symbol yields an empty table and a nil error.
	MaxHistory(ctx context.Context, symbol string) (frame.Table, error)
	// Range returns rows dated in [start, end).
	Range(ctx context.Context, symbol string, start, end time.Time) (frame.Table, error)
}

// StatusError is returned when a provider answers with an unexpected HTTP status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s: http status %d, body: %s", e.Provider, e.Code, e.Body)
}

// Unwrap lets errors.Is(err, ErrTransport) match status failures.
func (e *StatusError) Unwrap() error { return ErrTransport }

// Transport wraps a network-level failure so it matches ErrTransport.
func Transport(name, op string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", name, op, ErrTransport, err)
}
