package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/pb2106/MethaX/internal/app/config"
	"github.com/pb2106/MethaX/internal/app/di"
	"github.com/pb2106/MethaX/internal/app/router"
	accountadapters "github.com/pb2106/MethaX/internal/feature/account/adapters"
	accountusecase "github.com/pb2106/MethaX/internal/feature/account/usecase"
	dashboardhandler "github.com/pb2106/MethaX/internal/feature/dashboard/transport/handler"
	dashboardusecase "github.com/pb2106/MethaX/internal/feature/dashboard/usecase"
	marketadapters "github.com/pb2106/MethaX/internal/feature/marketdata/adapters"
	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	markethandler "github.com/pb2106/MethaX/internal/feature/marketdata/transport/handler"
	marketusecase "github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
	tradeadapters "github.com/pb2106/MethaX/internal/feature/trades/adapters"
	tradesusecase "github.com/pb2106/MethaX/internal/feature/trades/usecase"
	"github.com/pb2106/MethaX/internal/platform/cache"
	platformdb "github.com/pb2106/MethaX/internal/platform/db"
	"github.com/pb2106/MethaX/internal/platform/logger"
	platformredis "github.com/pb2106/MethaX/internal/platform/redis"
	"github.com/pb2106/MethaX/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()
	logger.Init(config.AppName, logger.ParseLevel(cfg.LogLevel))

	// db
	db, err := platformdb.Open(cfg.DatabaseURL, cfg.DBConnectTimeout)
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	candleRepo := marketadapters.NewCandleRepository(db)
	cachedCandleRepo := cache.NewCachingCandleRepository(rdb, cfg.CacheTTL, candleRepo, "candles")
	accountRepo := accountadapters.NewAccountRepository(db)
	tradeRepo := tradeadapters.NewTradeRepository(db)

	// Market data provider
	market := di.NewMarket(cfg)
	limiter := ratelimiter.NewRateLimiter(cfg.UpstreamRateLimit, time.Minute)

	// Usecase
	candlesUC := marketusecase.NewCandlesUsecase(cachedCandleRepo, cfg.Symbol)
	ingestUC := marketusecase.NewIngestUsecase(market, cachedCandleRepo, limiter,
		cfg.Symbol, cfg.UpstreamSymbol, cfg.Loc, cfg.BackfillDays)
	accountUC := accountusecase.NewAccountUsecase(accountRepo, cfg.DefaultCapital, cfg.Loc)
	tradesUC := tradesusecase.NewTradesUsecase(tradeRepo)

	hours, gate, err := di.NewRisk(cfg)
	if err != nil {
		log.Fatal(err)
	}
	spot := di.NewSpotResolver(market, cachedCandleRepo, cfg)
	dashboardUC := dashboardusecase.NewDashboardUsecase(accountUC, tradesUC, spot, hours, gate)

	// Handler
	marketH := markethandler.NewMarketHandler(candlesUC, ingestUC, cfg.Loc)
	dashboardH := dashboardhandler.NewDashboardHandler(dashboardUC)
	streamH := dashboardhandler.NewStreamHandler(dashboardUC, cfg.WSUpdateInterval)

	// Router
	r := router.NewRouter(marketH, dashboardH, streamH)

	// Seed empty candle series in the background so a fresh database
	// starts serving data without a manual update call.
	if cfg.BackfillOnStart {
		go warmup(ingestUC)
	}

	slog.Info("starting server",
		"addr", cfg.ServerAddr,
		"env", cfg.Env,
		"symbol", cfg.Symbol,
		"timezone", cfg.Timezone,
		"max_daily_trades", cfg.MaxDailyTrades,
		"risk_per_trade", cfg.RiskPerTrade,
		"max_daily_loss_r", cfg.MaxDailyLossR,
	)

	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal(err)
	}
}

func warmup(ingest *marketusecase.IngestUsecase) {
	ctx := context.Background()
	for _, tf := range entity.Timeframes {
		ok, err := ingest.EnsureAvailable(ctx, tf, 1)
		if err != nil {
			slog.Warn("startup backfill failed", "timeframe", tf, "error", err)
			continue
		}
		if !ok {
			slog.Warn("no candles available after backfill", "timeframe", tf)
		}
	}
}
