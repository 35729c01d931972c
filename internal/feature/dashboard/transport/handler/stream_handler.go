package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pb2106/MethaX/internal/feature/dashboard/transport/http/dto"
)

// DefaultStreamInterval is the push cadence when none is configured.
const DefaultStreamInterval = 5 * time.Second

const writeWait = 10 * time.Second

// StreamHandler pushes periodic market snapshots over a websocket.
type StreamHandler struct {
	uc       DashboardUsecase
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler pushing every interval.
func NewStreamHandler(uc DashboardUsecase, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	return &StreamHandler{
		uc:       uc,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard frontend is served from a different origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and pushes a snapshot immediately and then
// on every tick until the client goes away.
//
// Endpoint example:
// GET /api/v1/ws/market
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Drain incoming frames so control messages are processed and a client
	// close ends the stream.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.push(ctx, conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.push(ctx, conn); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn) error {
	snap, err := h.uc.MarketSnapshot(ctx, time.Now())
	if err != nil {
		// A failed snapshot skips the tick instead of dropping the stream.
		slog.Error("market snapshot failed", "error", err)
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(dto.StreamFrame{
		Market:     toMarketSection(snap.Market),
		RiskStatus: toRiskSection(snap.Risk),
	})
}
