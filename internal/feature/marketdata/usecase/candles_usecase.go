// Package usecase implements the business logic for market data operations.
package usecase

import (
	"context"
	"fmt"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultTimeframe is the bar duration used when a query does not name one.
	DefaultTimeframe = entity.Timeframe5m
	// DefaultLimit is the default number of candles returned per query.
	DefaultLimit = 100
	// MaxLimit is the largest number of candles returned per query.
	MaxLimit = 500
)

// CandleRepository abstracts the candle persistence layer.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type CandleRepository interface {
	// Upsert writes one candle and reports whether a new row was created.
	Upsert(ctx context.Context, candle entity.Candle) (bool, error)
	// UpsertBatch writes candles in one transaction and returns the number
	// of rows that did not exist before. Re-written bars do not count.
	UpsertBatch(ctx context.Context, candles []entity.Candle) (int64, error)
	// Latest returns up to limit of the most recent candles for the key,
	// ordered by ascending timestamp.
	Latest(ctx context.Context, symbol string, timeframe entity.Timeframe, limit int) ([]entity.Candle, error)
	// Count returns the number of stored candles for the key.
	Count(ctx context.Context, symbol string, timeframe entity.Timeframe) (int64, error)
	// MostRecent returns the newest stored candle for the symbol across all
	// timeframes, or nil when nothing is stored.
	MostRecent(ctx context.Context, symbol string) (*entity.Candle, error)
}

// candlesUsecase serves candle read queries for the configured instrument.
type candlesUsecase struct {
	candles CandleRepository
	symbol  string
}

// NewCandlesUsecase creates a new candlesUsecase instance.
func NewCandlesUsecase(candles CandleRepository, symbol string) *candlesUsecase {
	return &candlesUsecase{candles: candles, symbol: symbol}
}

// LatestCandles returns the most recent candles for the configured instrument
// in chronological order. An empty timeframe falls back to DefaultTimeframe
// and an out-of-range limit falls back to DefaultLimit.
func (cu *candlesUsecase) LatestCandles(ctx context.Context, timeframe entity.Timeframe, limit int) ([]entity.Candle, error) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if !timeframe.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, timeframe)
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	cs, err := cu.candles.Latest(ctx, cu.symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}

	return cs, nil
}

// Symbol returns the instrument symbol this usecase serves.
func (cu *candlesUsecase) Symbol() string {
	return cu.symbol
}
