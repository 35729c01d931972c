// Package usecase implements the business logic for the trades feature.
package usecase

import (
	"context"

	"github.com/pb2106/MethaX/internal/feature/trades/domain/entity"
)

// TradeRepository abstracts persistence for trade records.
// Following Go convention, the interface is defined on the consumer side.
type TradeRepository interface {
	// CountOpen returns the number of trades still holding a position.
	CountOpen(ctx context.Context) (int64, error)
	// ListRecent returns up to limit trades, newest entry first.
	ListRecent(ctx context.Context, limit int) ([]entity.Trade, error)
}

// DefaultHistoryLimit bounds how many trades a history read returns when the
// caller does not say.
const DefaultHistoryLimit = 50

// tradesUsecase reads the trade book. Writes happen in the execution engine,
// which lives outside this service.
type tradesUsecase struct {
	trades TradeRepository
}

// NewTradesUsecase creates a new tradesUsecase instance.
func NewTradesUsecase(trades TradeRepository) *tradesUsecase {
	return &tradesUsecase{trades: trades}
}

// OpenPositions returns the number of currently open trades.
func (tu *tradesUsecase) OpenPositions(ctx context.Context) (int64, error) {
	return tu.trades.CountOpen(ctx)
}

// History returns recent trades, newest first. Non-positive limits fall back
// to DefaultHistoryLimit.
func (tu *tradesUsecase) History(ctx context.Context, limit int) ([]entity.Trade, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return tu.trades.ListRecent(ctx, limit)
}
