// Package entity defines the domain models for the account feature.
package entity

// DailyState is the virtual account's ledger row for one trading day.
// A row is created lazily the first time a day is touched and accumulates
// totals as trades close.
type DailyState struct {
	Date                string   // trading day key, "YYYY-MM-DD" in the session timezone
	StartingCapital     float64  // capital at the start of the day
	EndingCapital       *float64 // capital after the day closed; nil while the day runs
	DailyPnL            float64  // realized P&L in currency
	DailyPnLR           float64  // realized P&L in R multiples, losses negative
	TradesCount         int      // entries taken today
	Wins                int
	Losses              int
	KillSwitchTriggered bool // halt flag for the rest of the day
}

// CurrentCapital returns the day's effective capital: the ending capital
// once set, otherwise the starting capital.
func (s *DailyState) CurrentCapital() float64 {
	if s.EndingCapital != nil {
		return *s.EndingCapital
	}
	return s.StartingCapital
}

// WinRate returns the fraction of finished trades that won, or zero when
// nothing has finished yet.
func (s *DailyState) WinRate() float64 {
	done := s.Wins + s.Losses
	if done == 0 {
		return 0
	}
	return float64(s.Wins) / float64(done)
}
