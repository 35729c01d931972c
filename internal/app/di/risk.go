package di

import (
	"fmt"

	"github.com/pb2106/MethaX/internal/app/config"
	"github.com/pb2106/MethaX/internal/feature/risk"
)

// NewRisk builds the trading window evaluator and the risk gate from the
// configured session times and limits.
func NewRisk(cfg config.Settings) (*risk.Hours, *risk.Gate, error) {
	open, err := risk.ParseTimeOfDay(cfg.MarketOpen)
	if err != nil {
		return nil, nil, fmt.Errorf("market open: %w", err)
	}
	close, err := risk.ParseTimeOfDay(cfg.MarketClose)
	if err != nil {
		return nil, nil, fmt.Errorf("market close: %w", err)
	}
	morningEnd, err := risk.ParseTimeOfDay(cfg.MorningBufferEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("morning buffer end: %w", err)
	}
	eodStart, err := risk.ParseTimeOfDay(cfg.EODBufferStart)
	if err != nil {
		return nil, nil, fmt.Errorf("eod buffer start: %w", err)
	}

	hours := risk.NewHours(cfg.Loc, open, close, morningEnd, eodStart)
	gate := risk.NewGate(risk.Limits{
		MaxDailyTrades: cfg.MaxDailyTrades,
		MaxDailyLossR:  cfg.MaxDailyLossR,
	}, hours)
	return hours, gate, nil
}
