// Package dto defines the JSON payloads for the dashboard endpoints.
package dto

// AccountSection is the account block of the dashboard payload.
type AccountSection struct {
	Capital       float64 `json:"capital"`
	DailyPnL      float64 `json:"daily_pnl"`
	DailyPnLR     float64 `json:"daily_pnl_r"`
	OpenPositions int64   `json:"open_positions"`
	TradesToday   int     `json:"trades_today"`
}

// MarketSection is the market block of the dashboard payload.
type MarketSection struct {
	NiftySpot      float64 `json:"nifty_spot"`
	Time           string  `json:"time"`
	IsOpen         bool    `json:"is_open"`
	MinutesToClose int     `json:"minutes_to_close"`
}

// RiskSection is the gate verdict block of the dashboard payload.
type RiskSection struct {
	CanTrade   bool   `json:"can_trade"`
	Reason     string `json:"reason"`
	KillSwitch bool   `json:"kill_switch"`
}

// DashboardResponse is the payload of GET /dashboard.
type DashboardResponse struct {
	Account    AccountSection `json:"account"`
	Market     MarketSection  `json:"market"`
	RiskStatus RiskSection    `json:"risk_status"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	MarketOpen       bool   `json:"market_open"`
	KillSwitchActive bool   `json:"kill_switch_active"`
}

// StreamFrame is one websocket push on /ws/market.
type StreamFrame struct {
	Market     MarketSection `json:"market"`
	RiskStatus RiskSection   `json:"risk_status"`
}

// AppInfoResponse is the payload of the root endpoint.
type AppInfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
