package barsapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InstrumentData/internal/provider"
)

func TestClient_Range(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "MSFT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "2020-01-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2020-02-01", r.URL.Query().Get("end"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"date": "2020-01-03", "open": 158.3, "high": 159.9, "low": 158.0, "close": null, "volume": 21116200},
			{"date": "2020-01-02", "open": 158.7, "high": 160.7, "low": 158.3, "close": 160.6, "volume": 22622100}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", "", 5*time.Second)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)

	tbl, err := c.Range(context.Background(), "MSFT", start, end)
	require.NoError(t, err)

	assert.Nil(t, tbl.Index, "dates stay in a column")
	assert.Equal(t, []string{"Date", "Open", "High", "Low", "Close", "Volume"}, tbl.Columns())

	dates, err := tbl.Dates()
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 1), dates[0], "rows sorted by date")

	closes, err := tbl.Float("Close")
	require.NoError(t, err)
	assert.Equal(t, 160.6, closes[0])
	assert.True(t, math.IsNaN(closes[1]))
}

func TestClient_NotFoundIsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	tbl, err := New(srv.URL, "", "", time.Second).MaxHistory(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.True(t, tbl.Empty())
}

func TestClient_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", "", time.Second).MaxHistory(context.Background(), "MSFT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrTransport))
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", "", time.Second).MaxHistory(context.Background(), "MSFT")
	require.Error(t, err)
	assert.False(t, errors.Is(err, provider.ErrTransport))
	assert.Contains(t, err.Error(), "decode bars")
}
