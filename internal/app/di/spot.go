package di

import (
	"github.com/pb2106/MethaX/internal/app/config"
	"github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
)

// NewSpotResolver assembles the spot price fallback chain in preference
// order: live quote, latest upstream minute bar, freshest stored candle,
// configured constant. The static tail means resolution never comes up
// empty unless every earlier source also fails mid-flight.
func NewSpotResolver(market usecase.MarketRepository, candles usecase.CandleRepository, cfg config.Settings) *usecase.SpotResolver {
	return usecase.NewSpotResolver(
		usecase.NewQuoteSource(market, cfg.UpstreamSymbol),
		usecase.NewMinuteHistorySource(market, cfg.UpstreamSymbol),
		usecase.NewStoredCandleSource(candles, cfg.Symbol),
		usecase.NewStaticSource(cfg.FallbackSpot),
	)
}
