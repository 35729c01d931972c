// Package entity defines the domain models for the trades feature.
package entity

import "time"

// Trade lifecycle states.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Directional labels for index option trades. A CALL rides the index up via
// a CE contract, a PUT rides it down via a PE contract.
const (
	DirectionCall = "CALL"
	DirectionPut  = "PUT"

	OptionTypeCE = "CE"
	OptionTypePE = "PE"
)

// Trade is one simulated option trade from entry to exit. Exit fields stay
// nil while the position is open.
type Trade struct {
	ID           uint
	Direction    string  // CALL or PUT
	Strike       float64 // strike price of the traded contract
	OptionType   string  // CE or PE
	EntryTime    time.Time
	EntryPrice   float64 // option premium paid at entry
	EntrySpot    float64 // index spot at entry
	StopLoss     float64 // premium level that forces an exit
	TakeProfit   float64 // premium level that banks the win
	PositionSize int     // contracts held (lots times lot size)
	ExitTime     *time.Time
	ExitPrice    *float64
	ExitSpot     *float64
	ExitReason   string
	PnL          *float64 // realized P&L in currency
	PnLR         *float64 // realized P&L in R multiples
	Status       string
}

// IsOpen reports whether the trade still holds a position.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}
