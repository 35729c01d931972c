// Package usecase assembles the dashboard, health and market-stream views
// from the account ledger, the trade book, the spot price chain and the
// risk gate.
package usecase

import (
	"context"
	"log/slog"
	"time"

	accountentity "github.com/pb2106/MethaX/internal/feature/account/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/risk"
)

// AccountService provides the daily ledger rows the views are built from.
// Following Go convention, the interface is defined on the consumer side.
type AccountService interface {
	// GetOrCreateToday returns today's row, creating it on first touch.
	GetOrCreateToday(ctx context.Context, now time.Time) (*accountentity.DailyState, error)
	// ForDay returns today's row without creating it, nil when absent.
	ForDay(ctx context.Context, now time.Time) (*accountentity.DailyState, error)
}

// PositionCounter reports how many trades currently hold a position.
type PositionCounter interface {
	OpenPositions(ctx context.Context) (int64, error)
}

// SpotQuoter resolves the index spot through the price fallback chain.
type SpotQuoter interface {
	Resolve(ctx context.Context) (price float64, source string, ok bool)
}

// AccountView is the account block of the dashboard.
type AccountView struct {
	Capital       float64
	DailyPnL      float64
	DailyPnLR     float64
	OpenPositions int64
	TradesToday   int
}

// MarketView is the market block of the dashboard and the websocket stream.
type MarketView struct {
	Spot           float64
	Time           time.Time
	IsOpen         bool
	MinutesToClose int
}

// RiskView is the gate verdict block.
type RiskView struct {
	CanTrade   bool
	Reason     string
	KillSwitch bool
}

// Dashboard is the full aggregated view.
type Dashboard struct {
	Account AccountView
	Market  MarketView
	Risk    RiskView
}

// Health is the liveness view. KillSwitch stays false while today's ledger
// row does not exist yet.
type Health struct {
	Status     string
	Timestamp  time.Time
	MarketOpen bool
	KillSwitch bool
}

// Snapshot is the periodic websocket payload: market and risk only, so a
// stream tick never writes to the ledger.
type Snapshot struct {
	Market MarketView
	Risk   RiskView
}

// dashboardUsecase aggregates the feature services into read views.
type dashboardUsecase struct {
	accounts  AccountService
	positions PositionCounter
	spot      SpotQuoter
	hours     *risk.Hours
	gate      *risk.Gate
}

// NewDashboardUsecase creates a new dashboardUsecase instance.
func NewDashboardUsecase(accounts AccountService, positions PositionCounter, spot SpotQuoter, hours *risk.Hours, gate *risk.Gate) *dashboardUsecase {
	return &dashboardUsecase{
		accounts:  accounts,
		positions: positions,
		spot:      spot,
		hours:     hours,
		gate:      gate,
	}
}

// Build assembles the full dashboard for the instant now. Today's ledger row
// is created on first touch so the view always has capital to show.
func (du *dashboardUsecase) Build(ctx context.Context, now time.Time) (*Dashboard, error) {
	state, err := du.accounts.GetOrCreateToday(ctx, now)
	if err != nil {
		return nil, err
	}

	open, err := du.positions.OpenPositions(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Account: AccountView{
			Capital:       state.CurrentCapital(),
			DailyPnL:      state.DailyPnL,
			DailyPnLR:     state.DailyPnLR,
			OpenPositions: open,
			TradesToday:   state.TradesCount,
		},
		Market: du.marketView(ctx, now),
		Risk:   du.riskView(state, now),
	}, nil
}

// Health reports liveness plus the two flags the frontend polls for. The
// ledger is read without creating today's row.
func (du *dashboardUsecase) Health(ctx context.Context, now time.Time) (*Health, error) {
	state, err := du.accounts.ForDay(ctx, now)
	if err != nil {
		return nil, err
	}

	killed := false
	if state != nil {
		killed = state.KillSwitchTriggered
	}

	return &Health{
		Status:     "healthy",
		Timestamp:  now.In(du.hours.Location()),
		MarketOpen: du.hours.IsOpen(now),
		KillSwitch: killed,
	}, nil
}

// MarketSnapshot builds the websocket tick payload. Absent ledger rows count
// as a clean day rather than forcing a write per tick.
func (du *dashboardUsecase) MarketSnapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	state, err := du.accounts.ForDay(ctx, now)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &accountentity.DailyState{}
	}

	return &Snapshot{
		Market: du.marketView(ctx, now),
		Risk:   du.riskView(state, now),
	}, nil
}

func (du *dashboardUsecase) marketView(ctx context.Context, now time.Time) MarketView {
	px, source, ok := du.spot.Resolve(ctx)
	if !ok {
		slog.Warn("no spot source produced a price")
	} else {
		slog.Debug("spot resolved", "price", px, "source", source)
	}

	return MarketView{
		Spot:           px,
		Time:           now.In(du.hours.Location()),
		IsOpen:         du.hours.IsOpen(now),
		MinutesToClose: du.hours.MinutesToClose(now),
	}
}

func (du *dashboardUsecase) riskView(state *accountentity.DailyState, now time.Time) RiskView {
	verdict := du.gate.Evaluate(risk.DayStats{
		TradesCount: state.TradesCount,
		PnLR:        state.DailyPnLR,
		KillSwitch:  state.KillSwitchTriggered,
	}, now)

	return RiskView{
		CanTrade:   verdict.CanTrade,
		Reason:     verdict.Reason,
		KillSwitch: state.KillSwitchTriggered,
	}
}
