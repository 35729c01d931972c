// Package usecase implements the business logic for the daily account ledger.
package usecase

import (
	"context"
	"time"

	"github.com/pb2106/MethaX/internal/feature/account/domain/entity"
)

// AccountRepository abstracts persistence for daily ledger rows.
// Following Go convention, the interface is defined on the consumer side.
type AccountRepository interface {
	// GetOrCreate returns the row for seed.Date, inserting seed first when the
	// row does not exist yet. Concurrent callers all see the same row.
	GetOrCreate(ctx context.Context, seed entity.DailyState) (*entity.DailyState, error)
	// GetByDate returns the row for the given day key, or nil when absent.
	GetByDate(ctx context.Context, date string) (*entity.DailyState, error)
}

// accountUsecase manages the one-row-per-day account ledger.
type accountUsecase struct {
	accounts       AccountRepository
	defaultCapital float64
	loc            *time.Location
}

// NewAccountUsecase creates a new accountUsecase instance.
func NewAccountUsecase(accounts AccountRepository, defaultCapital float64, loc *time.Location) *accountUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &accountUsecase{
		accounts:       accounts,
		defaultCapital: defaultCapital,
		loc:            loc,
	}
}

// dayKey renders the trading day for an instant in the session timezone.
// The same instant can fall on different calendar days in UTC and IST, so
// every lookup must go through this conversion.
func (au *accountUsecase) dayKey(t time.Time) string {
	return t.In(au.loc).Format("2006-01-02")
}

// GetOrCreateToday returns the ledger row for the day containing now,
// creating it with the configured starting capital on first touch.
func (au *accountUsecase) GetOrCreateToday(ctx context.Context, now time.Time) (*entity.DailyState, error) {
	seed := entity.DailyState{
		Date:            au.dayKey(now),
		StartingCapital: au.defaultCapital,
	}
	return au.accounts.GetOrCreate(ctx, seed)
}

// ForDay returns the ledger row for the day containing now, or nil when the
// day has not been touched. Unlike GetOrCreateToday it never writes.
func (au *accountUsecase) ForDay(ctx context.Context, now time.Time) (*entity.DailyState, error) {
	return au.accounts.GetByDate(ctx, au.dayKey(now))
}
