// Package handler provides the HTTP handlers for the dashboard feature.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pb2106/MethaX/internal/api"
	"github.com/pb2106/MethaX/internal/feature/dashboard/transport/http/dto"
	"github.com/pb2106/MethaX/internal/feature/dashboard/usecase"
)

// DashboardUsecase assembles the aggregate read views.
// Following Go convention, the interface is defined on the consumer side.
type DashboardUsecase interface {
	Build(ctx context.Context, now time.Time) (*usecase.Dashboard, error)
	Health(ctx context.Context, now time.Time) (*usecase.Health, error)
	MarketSnapshot(ctx context.Context, now time.Time) (*usecase.Snapshot, error)
}

// DashboardHandler handles the dashboard and health HTTP requests.
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard returns the aggregated account, market and risk view.
//
// Endpoint example:
// GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view, err := h.uc.Build(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Account: dto.AccountSection{
			Capital:       view.Account.Capital,
			DailyPnL:      view.Account.DailyPnL,
			DailyPnLR:     view.Account.DailyPnLR,
			OpenPositions: view.Account.OpenPositions,
			TradesToday:   view.Account.TradesToday,
		},
		Market:     toMarketSection(view.Market),
		RiskStatus: toRiskSection(view.Risk),
	})
}

// GetHealth reports liveness plus the market-open and kill-switch flags.
//
// Endpoint example:
// GET /api/v1/health
func (h *DashboardHandler) GetHealth(c *gin.Context) {
	view, err := h.uc.Health(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:           view.Status,
		Timestamp:        view.Timestamp.Format(time.RFC3339),
		MarketOpen:       view.MarketOpen,
		KillSwitchActive: view.KillSwitch,
	})
}

// AppInfo returns a root handler describing the service.
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.AppInfoResponse{
			Name:    name,
			Version: version,
			Endpoints: []string{
				"/api/v1/health",
				"/api/v1/dashboard",
				"/api/v1/current-price",
				"/api/v1/candles",
				"/api/v1/update-data",
				"/api/v1/ws/market",
				"/metrics",
			},
		})
	}
}

func toMarketSection(v usecase.MarketView) dto.MarketSection {
	return dto.MarketSection{
		NiftySpot:      v.Spot,
		Time:           v.Time.Format(time.RFC3339),
		IsOpen:         v.IsOpen,
		MinutesToClose: v.MinutesToClose,
	}
}

func toRiskSection(v usecase.RiskView) dto.RiskSection {
	return dto.RiskSection{
		CanTrade:   v.CanTrade,
		Reason:     v.Reason,
		KillSwitch: v.KillSwitch,
	}
}
