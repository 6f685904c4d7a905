package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"InstrumentData/internal/frame"
	"InstrumentData/internal/provider"
)

// fetchFunc performs one raw range download.
type fetchFunc func(ctx context.Context, symbol string, start, end time.Time) (frame.Table, error)

// withFetchNotice wraps a download so progress is logged before and after it
// and transport failures surface as ErrDataFetch. The after-notice is written
// on every exit path.
func withFetchNotice(logger *slog.Logger, source string, next fetchFunc) fetchFunc {
	return func(ctx context.Context, symbol string, start, end time.Time) (tbl frame.Table, err error) {
		log := logger.With(
			slog.String("fetch_id", uuid.NewString()),
			slog.String("provider", source),
			slog.String("symbol", symbol),
			slog.String("start", start.Format(frame.DateLayout)),
			slog.String("end", end.Format(frame.DateLayout)),
		)
		log.InfoContext(ctx, "fetching price history")
		began := time.Now()

		defer func() {
			if err != nil {
				log.ErrorContext(ctx, "price history fetch failed",
					slog.Duration("elapsed", time.Since(began)),
					slog.Any("error", err),
				)
				return
			}
			log.InfoContext(ctx, "price history fetched",
				slog.Int("rows", tbl.Len()),
				slog.Duration("elapsed", time.Since(began)),
			)
		}()

		tbl, err = next(ctx, symbol, start, end)
		if err == nil {
			return tbl, nil
		}
		if errors.Is(err, provider.ErrTransport) {
			return frame.Table{}, fmt.Errorf("%w: error downloading raw historical data for %s: %w", ErrDataFetch, symbol, err)
		}
		return frame.Table{}, fmt.Errorf("error downloading raw historical data for %s: %w", symbol, err)
	}
}
