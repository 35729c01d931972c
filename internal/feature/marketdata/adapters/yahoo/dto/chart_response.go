// Package dto defines data transfer objects for Yahoo Finance chart responses.
package dto

// ChartResponse represents the JSON envelope returned by the v8 chart endpoint.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult carries one symbol's metadata and its parallel quote arrays.
type ChartResult struct {
	Meta       ChartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []ChartQuote `json:"quote"`
	} `json:"indicators"`
}

// ChartMeta holds the per-symbol header of a chart response. RegularMarketPrice
// is the field Yahoo surfaces as the live "last price".
type ChartMeta struct {
	Currency             string  `json:"currency"`
	Symbol               string  `json:"symbol"`
	ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	RegularMarketTime    int64   `json:"regularMarketTime"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
}

// ChartQuote holds the OHLCV arrays, index-aligned with Timestamp.
// Buckets with no trades come back as null, hence the pointer elements.
type ChartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// ChartError is Yahoo's error payload (unknown symbol, bad range, and so on).
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
