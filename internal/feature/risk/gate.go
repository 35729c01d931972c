package risk

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pb2106/MethaX/internal/platform/metrics"
)

// Gate verdict reasons with fixed wording. The limit reasons are formatted
// with the offending values and are not constants.
const (
	ReasonKillSwitch = "Kill switch active"
	ReasonAllClear   = "All systems operational"
)

// Limits defines the configurable daily risk thresholds.
type Limits struct {
	MaxDailyTrades int     // new entries allowed per day
	MaxDailyLossR  float64 // daily loss ceiling in R multiples, as a positive number
}

// DayStats is the snapshot of today's account activity the gate judges.
type DayStats struct {
	TradesCount int     // entries taken today
	PnLR        float64 // realized day P&L in R multiples, losses negative
	KillSwitch  bool    // halt flag for the rest of the day
}

// Verdict is the gate's decision for one evaluation instant.
type Verdict struct {
	CanTrade bool
	Reason   string
}

// Gate is the pre-trade risk gate. Checks run in severity order and the
// first failure wins: kill switch, then trade count, then loss ceiling,
// then the entry window.
type Gate struct {
	limits Limits
	hours  *Hours
}

// NewGate creates a Gate enforcing limits within the session's hours.
func NewGate(limits Limits, hours *Hours) *Gate {
	return &Gate{limits: limits, hours: hours}
}

// Evaluate returns the verdict for opening a new position at now, given the
// day's stats so far. Evaluation never mutates state; callers decide what to
// do with a denial.
func (g *Gate) Evaluate(day DayStats, now time.Time) Verdict {
	v := g.evaluate(day, now)
	metrics.GateVerdicts.WithLabelValues(strconv.FormatBool(v.CanTrade)).Inc()
	return v
}

func (g *Gate) evaluate(day DayStats, now time.Time) Verdict {
	if day.KillSwitch {
		return Verdict{Reason: ReasonKillSwitch}
	}
	if day.TradesCount >= g.limits.MaxDailyTrades {
		return Verdict{Reason: fmt.Sprintf("Max daily trades reached (%d/%d)", day.TradesCount, g.limits.MaxDailyTrades)}
	}
	if day.PnLR <= -g.limits.MaxDailyLossR {
		return Verdict{Reason: fmt.Sprintf("Max daily loss reached (%.2fR)", day.PnLR)}
	}
	if ok, reason := g.hours.ValidForEntry(now); !ok {
		return Verdict{Reason: reason}
	}
	return Verdict{CanTrade: true, Reason: ReasonAllClear}
}
