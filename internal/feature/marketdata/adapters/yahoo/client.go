package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pb2106/MethaX/internal/feature/marketdata/adapters/yahoo/dto"
	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
	"github.com/pb2106/MethaX/internal/platform/metrics"
)

// YahooMarket is the MarketRepository implementation backed by the Yahoo
// Finance chart endpoint.
type YahooMarket struct {
	cfg    Config
	client *http.Client
	loc    *time.Location
}

// Compile-time check that YahooMarket implements MarketRepository.
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket creates a new YahooMarket with the given configuration and
// HTTP client. Candle timestamps are converted into loc before they are
// returned; a nil loc means UTC.
func NewYahooMarket(cfg Config, client *http.Client, loc *time.Location) *YahooMarket {
	if loc == nil {
		loc = time.UTC
	}
	return &YahooMarket{cfg: cfg.withDefaults(), client: client, loc: loc}
}

// GetTimeSeries fetches candles for symbol between start and end at the given
// chart interval. The provider caps intraday lookback (about 60 days for
// minute bars); windows reaching further back return what the provider still
// has. A window with no trading activity yields an empty slice, not an error.
func (y *YahooMarket) GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("interval", interval)
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("includePrePost", "false")

	body, err := y.chart(ctx, symbol, q)
	if err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}

	result := body.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	candles := make([]entity.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Yahoo pads empty buckets with nulls; skip bars without prices.
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}
		var vol int64
		if v := atInt(quote.Volume, i); v != nil {
			vol = *v
		}

		candles = append(candles, entity.Candle{
			Timestamp: time.Unix(ts, 0).In(y.loc),
			Open:      *o,
			High:      *h,
			Low:       *l,
			Close:     *c,
			Volume:    vol,
		})
	}
	return candles, nil
}

// GetQuote returns the provider's regular market price for the symbol.
func (y *YahooMarket) GetQuote(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("range", "1d")
	q.Set("interval", "1d")

	body, err := y.chart(ctx, symbol, q)
	if err != nil {
		return 0, err
	}
	if len(body.Chart.Result) == 0 {
		return 0, fmt.Errorf("yahoo: no quote for %s", symbol)
	}

	px := body.Chart.Result[0].Meta.RegularMarketPrice
	if px <= 0 {
		return 0, fmt.Errorf("yahoo: no quote for %s", symbol)
	}
	return px, nil
}

// chart performs one GET against the v8 chart endpoint and decodes the envelope.
func (y *YahooMarket) chart(ctx context.Context, symbol string, q url.Values) (*dto.ChartResponse, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)

	res, err := y.client.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("chart", "network_error").Inc()
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		metrics.UpstreamRequests.WithLabelValues("chart", "http_error").Inc()
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		metrics.UpstreamRequests.WithLabelValues("chart", "decode_error").Inc()
		return nil, err
	}
	if body.Chart.Error != nil {
		metrics.UpstreamRequests.WithLabelValues("chart", "api_error").Inc()
		return nil, fmt.Errorf("yahoo: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}

	metrics.UpstreamRequests.WithLabelValues("chart", "ok").Inc()
	return &body, nil
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

func atInt(vals []*int64, i int) *int64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
