package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pb2106/MethaX/internal/platform/metrics"
)

// SpotSource produces a spot price from one origin in the fallback chain.
type SpotSource interface {
	// Name identifies the source in logs and metrics.
	Name() string
	// Price returns a spot price. ok is false when this source has nothing usable.
	Price(ctx context.Context) (price float64, ok bool)
}

// SpotResolver walks an ordered chain of price sources and returns the first
// usable price. Order encodes preference: live data first, static last.
type SpotResolver struct {
	sources []SpotSource
}

// NewSpotResolver creates a resolver over the given sources, tried in order.
func NewSpotResolver(sources ...SpotSource) *SpotResolver {
	return &SpotResolver{sources: sources}
}

// Resolve returns the first available price along with the name of the source
// that produced it.
func (r *SpotResolver) Resolve(ctx context.Context) (float64, string, bool) {
	for _, s := range r.sources {
		if px, ok := s.Price(ctx); ok {
			metrics.SpotResolutions.WithLabelValues(s.Name()).Inc()
			return px, s.Name(), true
		}
	}
	metrics.SpotResolutions.WithLabelValues("none").Inc()
	return 0, "", false
}

// quoteSource serves spot prices from the provider's live quote.
type quoteSource struct {
	market MarketRepository
	symbol string
}

// NewQuoteSource returns the chain tier backed by the provider's live quote.
func NewQuoteSource(market MarketRepository, symbol string) SpotSource {
	return &quoteSource{market: market, symbol: symbol}
}

func (s *quoteSource) Name() string { return "live_quote" }

func (s *quoteSource) Price(ctx context.Context) (float64, bool) {
	px, err := s.market.GetQuote(ctx, s.symbol)
	if err != nil {
		slog.Debug("live quote unavailable", "symbol", s.symbol, "error", err)
		return 0, false
	}
	if px <= 0 {
		return 0, false
	}
	return px, true
}

// minuteHistorySource serves spot prices from the close of the newest
// 1-minute bar within the last 24 hours.
type minuteHistorySource struct {
	market MarketRepository
	symbol string
}

// NewMinuteHistorySource returns the chain tier backed by recent 1-minute bars.
func NewMinuteHistorySource(market MarketRepository, symbol string) SpotSource {
	return &minuteHistorySource{market: market, symbol: symbol}
}

func (s *minuteHistorySource) Name() string { return "minute_history" }

func (s *minuteHistorySource) Price(ctx context.Context) (float64, bool) {
	end := time.Now()
	cs, err := s.market.GetTimeSeries(ctx, s.symbol, "1m", end.Add(-24*time.Hour), end)
	if err != nil {
		slog.Debug("minute history unavailable", "symbol", s.symbol, "error", err)
		return 0, false
	}
	if len(cs) == 0 {
		return 0, false
	}
	last := cs[len(cs)-1].Close
	if last <= 0 {
		return 0, false
	}
	return last, true
}

// storedCandleSource serves spot prices from the newest stored candle.
type storedCandleSource struct {
	candles CandleRepository
	symbol  string
}

// NewStoredCandleSource returns the chain tier backed by the candle store.
func NewStoredCandleSource(candles CandleRepository, symbol string) SpotSource {
	return &storedCandleSource{candles: candles, symbol: symbol}
}

func (s *storedCandleSource) Name() string { return "stored_candle" }

func (s *storedCandleSource) Price(ctx context.Context) (float64, bool) {
	c, err := s.candles.MostRecent(ctx, s.symbol)
	if err != nil {
		slog.Debug("stored candle unavailable", "symbol", s.symbol, "error", err)
		return 0, false
	}
	if c == nil || c.Close <= 0 {
		return 0, false
	}
	return c.Close, true
}

// staticSource serves a fixed price when every live source has failed.
type staticSource struct {
	price float64
}

// NewStaticSource returns the terminal chain tier with a configured price.
func NewStaticSource(price float64) SpotSource {
	return &staticSource{price: price}
}

func (s *staticSource) Name() string { return "static_default" }

func (s *staticSource) Price(context.Context) (float64, bool) {
	return s.price, s.price > 0
}
