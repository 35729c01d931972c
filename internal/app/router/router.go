package router

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pb2106/MethaX/internal/app/config"
	dashboardhandler "github.com/pb2106/MethaX/internal/feature/dashboard/transport/handler"
	markethandler "github.com/pb2106/MethaX/internal/feature/marketdata/transport/handler"
	"github.com/pb2106/MethaX/internal/platform/metrics"
)

// NewRouter wires every HTTP route of the service.
func NewRouter(market *markethandler.MarketHandler, dashboard *dashboardhandler.DashboardHandler,
	stream *dashboardhandler.StreamHandler) *gin.Engine {
	r := gin.Default()

	// The dashboard frontend runs on its own origin.
	r.Use(cors.Default())
	r.Use(metricsMiddleware())

	// Service info and operational endpoints
	r.GET("/", dashboardhandler.AppInfo(config.AppName, config.Version))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/health", dashboard.GetHealth)
		api.GET("/dashboard", dashboard.GetDashboard)
		api.GET("/current-price", market.GetCurrentPrice)
		api.GET("/candles", market.GetCandles)
		api.POST("/update-data", market.UpdateData)
		api.GET("/ws/market", stream.Stream)
	}

	return r
}

// metricsMiddleware records request counts and latency per route. The
// registered route pattern is used as the path label so /candles?limit=10
// and /candles?limit=50 land in the same series.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
