// cmd/ingest refreshes stored candles from the market data provider, for
// one timeframe or for all of them.
//
// Usage:
//
//	go run ./cmd/ingest -timeframe=all -days=7
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pb2106/MethaX/internal/app/config"
	"github.com/pb2106/MethaX/internal/app/di"
	marketadapters "github.com/pb2106/MethaX/internal/feature/marketdata/adapters"
	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	marketusecase "github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
	platformdb "github.com/pb2106/MethaX/internal/platform/db"
	"github.com/pb2106/MethaX/internal/platform/logger"
	"github.com/pb2106/MethaX/internal/shared/ratelimiter"
)

func main() {
	timeframe := flag.String("timeframe", "all", `timeframe to refresh ("5m", "15m", "1h", "1d" or "all")`)
	days := flag.Int("days", 7, "how many days back to fetch")
	flag.Parse()

	cfg := config.Load()
	logger.Init("methax-ingest", logger.ParseLevel(cfg.LogLevel))

	db, err := platformdb.Open(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		log.Fatal(err)
	}

	market := di.NewMarket(cfg)
	candleRepo := marketadapters.NewCandleRepository(db)
	limiter := ratelimiter.NewRateLimiter(cfg.UpstreamRateLimit, time.Minute)
	uc := marketusecase.NewIngestUsecase(market, candleRepo, limiter,
		cfg.Symbol, cfg.UpstreamSymbol, cfg.Loc, cfg.BackfillDays)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Every log line of one run carries the same trace id.
	ctx = logger.WithTraceID(ctx, logger.GenerateTraceID("ingest", time.Now()))
	lg := slog.Default().With(logger.LogWithTrace(ctx)...)

	if *timeframe == "all" {
		total, failed := uc.IngestAll(ctx, *days)
		lg.Info("ingest finished", "inserted", total, "failed_timeframes", failed)
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	inserted, err := uc.UpdateLatest(ctx, entity.Timeframe(*timeframe), *days)
	if err != nil {
		lg.Error("ingest failed", "timeframe", *timeframe, "error", err)
		os.Exit(1)
	}
	lg.Info("ingest finished", "timeframe", *timeframe, "inserted", inserted)
}
