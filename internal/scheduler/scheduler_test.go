package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestScheduler_RunNow(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(context.Background(), func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, quietLogger())

	require.NoError(t, s.RunNow())
	assert.Equal(t, int32(1), calls.Load())
}

func TestScheduler_RunNowPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	s := NewScheduler(context.Background(), func(ctx context.Context) error { return boom }, quietLogger())
	require.ErrorIs(t, s.RunNow(), boom)
}

func TestScheduler_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	s := NewScheduler(ctx, func(ctx context.Context) error {
		called = true
		return nil
	}, quietLogger())

	require.ErrorIs(t, s.RunNow(), context.Canceled)
	assert.False(t, called)
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(context.Background(), func(ctx context.Context) error { return nil }, quietLogger())

	require.Error(t, s.Register("not a cron spec"))
	_, ok := s.Next()
	assert.False(t, ok)

	require.NoError(t, s.Register("0 30 22 * * 1-5"))
	s.Start()
	defer s.Stop()

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 22, next.Hour())
	assert.Equal(t, 30, next.Minute())
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := NewScheduler(context.Background(), func(ctx context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}, quietLogger())

	require.NoError(t, s.Register("* * * * * *"))
	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("refresh did not fire within 3s")
	}
}
