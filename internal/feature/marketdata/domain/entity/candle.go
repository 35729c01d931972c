// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for an instrument on a single timeframe.
type Candle struct {
	Symbol    string    // Instrument symbol as stored (e.g., "NIFTY")
	Timeframe Timeframe // Bar duration this candle aggregates
	Timestamp time.Time // Start of the bar period
	Open      float64   // Opening price
	High      float64   // Highest price during this period
	Low       float64   // Lowest price during this period
	Close     float64   // Closing price
	Volume    int64     // Traded volume (0 for index data)
}
