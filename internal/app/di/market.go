// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/pb2106/MethaX/internal/app/config"
	"github.com/pb2106/MethaX/internal/feature/marketdata/adapters/yahoo"
	platformhttp "github.com/pb2106/MethaX/internal/platform/http"
)

// NewMarket creates a fully configured YahooMarket with a tuned HTTP client.
func NewMarket(cfg config.Settings) *yahoo.YahooMarket {
	httpClient := platformhttp.NewHTTPClient(cfg.HTTPTimeout)
	return yahoo.NewYahooMarket(yahoo.Config{BaseURL: cfg.UpstreamBaseURL}, httpClient, cfg.Loc)
}
