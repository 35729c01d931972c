package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardhandler "github.com/pb2106/MethaX/internal/feature/dashboard/transport/handler"
	dashboardusecase "github.com/pb2106/MethaX/internal/feature/dashboard/usecase"
	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	markethandler "github.com/pb2106/MethaX/internal/feature/marketdata/transport/handler"
)

type stubCandles struct{}

func (stubCandles) LatestCandles(ctx context.Context, timeframe entity.Timeframe, limit int) ([]entity.Candle, error) {
	return nil, nil
}
func (stubCandles) Symbol() string { return "NIFTY" }

type stubIngest struct{}

func (stubIngest) UpdateLatest(ctx context.Context, timeframe entity.Timeframe, daysBack int) (int64, error) {
	return 0, nil
}
func (stubIngest) CurrentPrice(ctx context.Context) (float64, error) { return 22400, nil }

type stubDashboard struct{}

func (stubDashboard) Build(ctx context.Context, now time.Time) (*dashboardusecase.Dashboard, error) {
	return &dashboardusecase.Dashboard{}, nil
}
func (stubDashboard) Health(ctx context.Context, now time.Time) (*dashboardusecase.Health, error) {
	return &dashboardusecase.Health{Status: "healthy", Timestamp: now}, nil
}
func (stubDashboard) MarketSnapshot(ctx context.Context, now time.Time) (*dashboardusecase.Snapshot, error) {
	return &dashboardusecase.Snapshot{}, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	market := markethandler.NewMarketHandler(stubCandles{}, stubIngest{}, time.UTC)
	dashboard := dashboardhandler.NewDashboardHandler(stubDashboard{})
	stream := dashboardhandler.NewStreamHandler(stubDashboard{}, time.Second)
	return NewRouter(market, dashboard, stream)
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/dashboard", http.StatusOK},
		{http.MethodGet, "/api/v1/current-price", http.StatusOK},
		{http.MethodGet, "/api/v1/candles", http.StatusOK},
		{http.MethodPost, "/api/v1/update-data", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{http.MethodPost, "/api/v1/candles", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestNewRouter_RootInfo(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"MethaX"`)
	assert.Contains(t, w.Body.String(), "/api/v1/dashboard")
}

func TestNewRouter_MetricsExposition(t *testing.T) {
	r := newTestEngine()

	// A handled request seeds the HTTP counter series.
	seed := httptest.NewRecorder()
	r.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, seed.Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "methax_http_requests_total"), "exposition should carry the request counter")
	assert.Contains(t, body, `path="/api/v1/health"`)
}
