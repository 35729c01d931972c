// Package yahoo implements the market data provider against the public
// Yahoo Finance v8 chart API, the upstream for NSE index data.
package yahoo

const (
	// DefaultBaseURL is the public chart API host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultUserAgent is sent when the configuration does not set one;
	// Yahoo rejects requests without a browser-like user agent.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) MethaX/1.0"
)

// Config holds configuration for the Yahoo Finance chart client.
type Config struct {
	BaseURL   string // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	UserAgent string // User-Agent header sent with every request
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}
