package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	"github.com/pb2106/MethaX/internal/shared/ratelimiter"
)

// DefaultBackfillDays is the lookback window used when a timeframe has too
// little history and needs a one-shot backfill.
const DefaultBackfillDays = 30

// MarketRepository abstracts the upstream market data provider.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type MarketRepository interface {
	// GetTimeSeries fetches candles for the provider symbol between start and
	// end at the given provider interval (e.g., "5m", "60m", "1d").
	GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error)
	// GetQuote fetches the latest traded price for the provider symbol.
	GetQuote(ctx context.Context, symbol string) (float64, error)
}

// IngestUsecase fetches candles from the upstream provider and persists them.
// The provider may use a different symbol than the store (the NIFTY 50 index
// trades under "^NSEI" upstream); fetched candles are re-keyed before saving.
type IngestUsecase struct {
	market         MarketRepository
	candles        CandleRepository
	rateLimiter    ratelimiter.RateLimiterInterface
	spot           *SpotResolver
	symbol         string
	upstreamSymbol string
	loc            *time.Location
	backfillDays   int
}

// NewIngestUsecase creates a new IngestUsecase. backfillDays values below 1
// fall back to DefaultBackfillDays.
func NewIngestUsecase(market MarketRepository, candles CandleRepository, rateLimiter ratelimiter.RateLimiterInterface, symbol, upstreamSymbol string, loc *time.Location, backfillDays int) *IngestUsecase {
	if loc == nil {
		loc = time.UTC
	}
	if backfillDays <= 0 {
		backfillDays = DefaultBackfillDays
	}
	return &IngestUsecase{
		market:      market,
		candles:     candles,
		rateLimiter: rateLimiter,
		spot: NewSpotResolver(
			NewQuoteSource(market, upstreamSymbol),
			NewMinuteHistorySource(market, upstreamSymbol),
		),
		symbol:         symbol,
		upstreamSymbol: upstreamSymbol,
		loc:            loc,
		backfillDays:   backfillDays,
	}
}

// FetchRange fetches candles for the configured instrument from the provider
// without persisting them. Returned candles carry the store symbol and
// timeframe rather than the provider's.
func (iu *IngestUsecase) FetchRange(ctx context.Context, timeframe entity.Timeframe, start, end time.Time) ([]entity.Candle, error) {
	if !timeframe.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, timeframe)
	}

	iu.rateLimiter.WaitIfNeeded()
	cs, err := iu.market.GetTimeSeries(ctx, iu.upstreamSymbol, timeframe.Interval(), start, end)
	if err != nil {
		return nil, err
	}

	for i := range cs {
		cs[i].Symbol = iu.symbol
		cs[i].Timeframe = timeframe
	}
	return cs, nil
}

// UpdateLatest fetches the most recent daysBack days of candles for the
// timeframe and upserts them. It returns the number of newly inserted rows;
// re-fetched bars that already existed are updated in place and do not count.
func (iu *IngestUsecase) UpdateLatest(ctx context.Context, timeframe entity.Timeframe, daysBack int) (int64, error) {
	if daysBack <= 0 {
		daysBack = 1
	}

	end := time.Now().In(iu.loc)
	start := end.AddDate(0, 0, -daysBack)

	cs, err := iu.FetchRange(ctx, timeframe, start, end)
	if err != nil {
		return 0, err
	}
	if len(cs) == 0 {
		slog.Warn("no candles returned from provider", "symbol", iu.symbol, "timeframe", timeframe, "days_back", daysBack)
		return 0, nil
	}

	inserted, err := iu.candles.UpsertBatch(ctx, cs)
	if err != nil {
		return 0, err
	}

	slog.Info("updated candles", "symbol", iu.symbol, "timeframe", timeframe, "fetched", len(cs), "inserted", inserted)
	return inserted, nil
}

// EnsureAvailable checks that at least required candles exist for the
// timeframe, backfilling once from the provider when the store runs short.
// It reports whether the requirement is met after the attempt; a false result
// with a nil error means the provider simply has no more history.
func (iu *IngestUsecase) EnsureAvailable(ctx context.Context, timeframe entity.Timeframe, required int) (bool, error) {
	if !timeframe.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, timeframe)
	}

	count, err := iu.candles.Count(ctx, iu.symbol, timeframe)
	if err != nil {
		return false, err
	}
	if count >= int64(required) {
		return true, nil
	}

	slog.Info("insufficient candles, backfilling", "symbol", iu.symbol, "timeframe", timeframe, "have", count, "required", required)
	if _, err := iu.UpdateLatest(ctx, timeframe, iu.backfillDays); err != nil {
		return false, err
	}

	count, err = iu.candles.Count(ctx, iu.symbol, timeframe)
	if err != nil {
		return false, err
	}
	return count >= int64(required), nil
}

// IngestAll updates every supported timeframe, continuing past individual
// failures. It returns the total number of newly inserted candles and the
// number of timeframes that failed.
func (iu *IngestUsecase) IngestAll(ctx context.Context, daysBack int) (int64, int) {
	var total int64
	failed := 0
	for _, tf := range entity.Timeframes {
		inserted, err := iu.UpdateLatest(ctx, tf, daysBack)
		if err != nil {
			// Keep going so one bad timeframe does not starve the rest.
			slog.Error("failed to update candles", "symbol", iu.symbol, "timeframe", tf, "error", err)
			failed++
			continue
		}
		total += inserted
	}
	return total, failed
}

// CurrentPrice returns the live spot price from the provider, falling back to
// the close of the latest 1-minute bar when the quote is unavailable.
func (iu *IngestUsecase) CurrentPrice(ctx context.Context) (float64, error) {
	iu.rateLimiter.WaitIfNeeded()
	px, source, ok := iu.spot.Resolve(ctx)
	if !ok {
		return 0, ErrPriceUnavailable
	}
	slog.Debug("resolved current price", "symbol", iu.symbol, "source", source, "price", px)
	return px, nil
}
