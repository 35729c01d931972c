// Package dto defines the JSON payloads for the market data endpoints.
package dto

// CandleResponse is one OHLCV bar in a candle listing.
type CandleResponse struct {
	Timestamp string  `json:"timestamp"` // RFC 3339 in the session timezone
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// CandlesResponse is the payload of GET /candles.
type CandlesResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Count     int              `json:"count"`
	Candles   []CandleResponse `json:"candles"`
}

// CurrentPriceResponse is the payload of GET /current-price.
type CurrentPriceResponse struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

// UpdateDataResponse is the payload of a successful POST /update-data.
type UpdateDataResponse struct {
	Status       string `json:"status"`
	Timeframe    string `json:"timeframe"`
	DaysFetched  int    `json:"days_fetched"`
	CandlesSaved int64  `json:"candles_saved"`
	Timestamp    string `json:"timestamp"`
}

// UpdateFailedResponse reports a rejected or failed data refresh.
type UpdateFailedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
