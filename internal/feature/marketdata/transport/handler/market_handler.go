// Package handler provides the HTTP handlers for the marketdata feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pb2106/MethaX/internal/api"
	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/marketdata/transport/http/dto"
	"github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
)

// Bounds for the POST /update-data days parameter.
const (
	DefaultUpdateDays = 7
	MaxUpdateDays     = 60
)

// CandlesUsecase reads stored candles.
// Following Go convention, the interface is defined on the consumer side.
type CandlesUsecase interface {
	LatestCandles(ctx context.Context, timeframe entity.Timeframe, limit int) ([]entity.Candle, error)
	Symbol() string
}

// IngestUsecase refreshes stored candles from the upstream provider and
// resolves the current price.
type IngestUsecase interface {
	UpdateLatest(ctx context.Context, timeframe entity.Timeframe, daysBack int) (int64, error)
	CurrentPrice(ctx context.Context) (float64, error)
}

// MarketHandler handles the candle and price HTTP requests.
type MarketHandler struct {
	candles CandlesUsecase
	ingest  IngestUsecase
	loc     *time.Location
}

// NewMarketHandler creates a new MarketHandler instance.
func NewMarketHandler(candles CandlesUsecase, ingest IngestUsecase, loc *time.Location) *MarketHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &MarketHandler{candles: candles, ingest: ingest, loc: loc}
}

// GetCandles returns stored candles in chronological order.
//
// Endpoint example:
// GET /api/v1/candles?timeframe=5m&limit=100
func (h *MarketHandler) GetCandles(c *gin.Context) {
	timeframe := c.Query("timeframe")
	limitStr := c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultLimit))

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > usecase.MaxLimit {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be an integer between 1 and 500"})
		return
	}

	candles, err := h.candles.LatestCandles(c.Request.Context(), entity.Timeframe(timeframe), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrUnsupportedTimeframe) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	if timeframe == "" {
		timeframe = string(usecase.DefaultTimeframe)
	}

	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Timestamp: x.Timestamp.In(h.loc).Format(time.RFC3339),
			Open:      x.Open,
			High:      x.High,
			Low:       x.Low,
			Close:     x.Close,
			Volume:    x.Volume,
		})
	}

	c.JSON(http.StatusOK, dto.CandlesResponse{
		Symbol:    h.candles.Symbol(),
		Timeframe: timeframe,
		Count:     len(out),
		Candles:   out,
	})
}

// GetCurrentPrice returns the index spot resolved through the live chain.
//
// Endpoint example:
// GET /api/v1/current-price
func (h *MarketHandler) GetCurrentPrice(c *gin.Context) {
	price, err := h.ingest.CurrentPrice(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CurrentPriceResponse{
		Symbol:    h.candles.Symbol(),
		Price:     price,
		Timestamp: time.Now().In(h.loc).Format(time.RFC3339),
	})
}

// UpdateData fetches the recent window from the provider and upserts it.
//
// Endpoint example:
// POST /api/v1/update-data?timeframe=5m&days=7
func (h *MarketHandler) UpdateData(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", string(usecase.DefaultTimeframe))
	daysStr := c.DefaultQuery("days", strconv.Itoa(DefaultUpdateDays))

	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 || days > MaxUpdateDays {
		c.JSON(http.StatusBadRequest, dto.UpdateFailedResponse{
			Status:  "error",
			Message: "days must be an integer between 1 and 60",
		})
		return
	}

	saved, err := h.ingest.UpdateLatest(c.Request.Context(), entity.Timeframe(timeframe), days)
	if err != nil {
		if errors.Is(err, usecase.ErrUnsupportedTimeframe) {
			c.JSON(http.StatusBadRequest, dto.UpdateFailedResponse{Status: "error", Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.UpdateFailedResponse{Status: "error", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateDataResponse{
		Status:       "success",
		Timeframe:    timeframe,
		DaysFetched:  days,
		CandlesSaved: saved,
		Timestamp:    time.Now().In(h.loc).Format(time.RFC3339),
	})
}
