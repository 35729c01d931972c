package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb2106/MethaX/internal/feature/dashboard/transport/handler"
	"github.com/pb2106/MethaX/internal/feature/dashboard/transport/http/dto"
	"github.com/pb2106/MethaX/internal/feature/dashboard/usecase"
)

var testIST = time.FixedZone("IST", 5*3600+30*60)

// mockDashboardUsecase is a mock implementation of handler.DashboardUsecase.
type mockDashboardUsecase struct {
	BuildFunc          func(ctx context.Context, now time.Time) (*usecase.Dashboard, error)
	HealthFunc         func(ctx context.Context, now time.Time) (*usecase.Health, error)
	MarketSnapshotFunc func(ctx context.Context, now time.Time) (*usecase.Snapshot, error)
}

func (m *mockDashboardUsecase) Build(ctx context.Context, now time.Time) (*usecase.Dashboard, error) {
	return m.BuildFunc(ctx, now)
}

func (m *mockDashboardUsecase) Health(ctx context.Context, now time.Time) (*usecase.Health, error) {
	return m.HealthFunc(ctx, now)
}

func (m *mockDashboardUsecase) MarketSnapshot(ctx context.Context, now time.Time) (*usecase.Snapshot, error) {
	return m.MarketSnapshotFunc(ctx, now)
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	viewTime := time.Date(2024, 6, 10, 10, 0, 0, 0, testIST)

	t.Run("success", func(t *testing.T) {
		mockUC := &mockDashboardUsecase{
			BuildFunc: func(ctx context.Context, now time.Time) (*usecase.Dashboard, error) {
				return &usecase.Dashboard{
					Account: usecase.AccountView{
						Capital:       100000,
						DailyPnL:      -500,
						DailyPnLR:     -0.5,
						OpenPositions: 1,
						TradesToday:   1,
					},
					Market: usecase.MarketView{
						Spot:           22410.5,
						Time:           viewTime,
						IsOpen:         true,
						MinutesToClose: 330,
					},
					Risk: usecase.RiskView{
						CanTrade: true,
						Reason:   "All systems operational",
					},
				}, nil
			},
		}
		h := handler.NewDashboardHandler(mockUC)

		router := gin.New()
		router.GET("/dashboard", h.GetDashboard)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"account": {"capital":100000, "daily_pnl":-500, "daily_pnl_r":-0.5, "open_positions":1, "trades_today":1},
			"market": {"nifty_spot":22410.5, "time":"2024-06-10T10:00:00+05:30", "is_open":true, "minutes_to_close":330},
			"risk_status": {"can_trade":true, "reason":"All systems operational", "kill_switch":false}
		}`, w.Body.String())
	})

	t.Run("usecase error", func(t *testing.T) {
		mockUC := &mockDashboardUsecase{
			BuildFunc: func(ctx context.Context, now time.Time) (*usecase.Dashboard, error) {
				return nil, errors.New("db error")
			},
		}
		h := handler.NewDashboardHandler(mockUC)

		router := gin.New()
		router.GET("/dashboard", h.GetDashboard)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"db error"}`, w.Body.String())
	})
}

func TestDashboardHandler_GetHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	viewTime := time.Date(2024, 6, 10, 16, 0, 0, 0, testIST)

	t.Run("success", func(t *testing.T) {
		mockUC := &mockDashboardUsecase{
			HealthFunc: func(ctx context.Context, now time.Time) (*usecase.Health, error) {
				return &usecase.Health{
					Status:     "healthy",
					Timestamp:  viewTime,
					MarketOpen: false,
					KillSwitch: true,
				}, nil
			},
		}
		h := handler.NewDashboardHandler(mockUC)

		router := gin.New()
		router.GET("/health", h.GetHealth)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"status": "healthy",
			"timestamp": "2024-06-10T16:00:00+05:30",
			"market_open": false,
			"kill_switch_active": true
		}`, w.Body.String())
	})

	t.Run("usecase error", func(t *testing.T) {
		mockUC := &mockDashboardUsecase{
			HealthFunc: func(ctx context.Context, now time.Time) (*usecase.Health, error) {
				return nil, errors.New("db error")
			},
		}
		h := handler.NewDashboardHandler(mockUC)

		router := gin.New()
		router.GET("/health", h.GetHealth)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"db error"}`, w.Body.String())
	})
}

func TestAppInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/", handler.AppInfo("MethaX", "1.0.0"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AppInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MethaX", resp.Name)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Contains(t, resp.Endpoints, "/api/v1/dashboard")
	assert.Contains(t, resp.Endpoints, "/metrics")
}
