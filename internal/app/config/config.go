// Package config loads all runtime settings from environment variables,
// with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppName and Version identify the service in logs and the root endpoint.
const (
	AppName = "MethaX"
	Version = "1.0.0"
)

// Settings holds every knob the service reads. It is populated once by
// Load and passed by value into constructors; nothing mutates it later.
type Settings struct {
	Env      string // "development" or "production"
	LogLevel string

	ServerAddr string

	// Exchange session timezone. Loc is resolved from Timezone at load
	// time and never nil.
	Timezone string
	Loc      *time.Location

	DatabaseURL      string // sqlite path or postgres DSN
	DBConnectTimeout time.Duration

	// Redis is optional; when unreachable the server runs without cache.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration // upper bound; effective TTL ends at the next bar boundary

	Symbol            string // series key in storage and API responses
	UpstreamSymbol    string // ticker the market data provider knows
	UpstreamBaseURL   string
	HTTPTimeout       time.Duration
	UpstreamRateLimit int // upstream requests allowed per minute
	BackfillDays      int
	BackfillOnStart   bool

	DefaultCapital float64
	MaxDailyTrades int
	RiskPerTrade   float64 // fraction of capital risked per trade, sizing hint for clients
	MaxDailyLossR  float64

	MarketOpen       string // "HH:MM" in the session timezone
	MarketClose      string
	MorningBufferEnd string
	EODBufferStart   string

	FallbackSpot float64 // last-resort spot price when every source fails

	WSUpdateInterval time.Duration
}

// Load reads the optional .env file, then the process environment, and
// returns Settings with defaults for anything unset.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using process environment")
	}

	tz := getEnv("TIMEZONE", "Asia/Kolkata")

	return Settings{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		Timezone: tz,
		Loc:      resolveLocation(tz),

		DatabaseURL:      getEnv("DATABASE_URL", "methax.db"),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		Symbol:            getEnv("SYMBOL", "NIFTY"),
		UpstreamSymbol:    getEnv("UPSTREAM_SYMBOL", "^NSEI"),
		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "https://query1.finance.yahoo.com"),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		UpstreamRateLimit: getEnvInt("UPSTREAM_RATE_LIMIT", 60),
		BackfillDays:      getEnvInt("BACKFILL_DAYS", 30),
		BackfillOnStart:   getEnvBool("BACKFILL_ON_START", true),

		DefaultCapital: getEnvFloat("DEFAULT_CAPITAL", 100000),
		MaxDailyTrades: getEnvInt("MAX_DAILY_TRADES", 2),
		RiskPerTrade:   getEnvFloat("RISK_PER_TRADE", 0.01),
		MaxDailyLossR:  getEnvFloat("MAX_DAILY_LOSS_R", 1.0),

		MarketOpen:       getEnv("MARKET_OPEN", "09:15"),
		MarketClose:      getEnv("MARKET_CLOSE", "15:30"),
		MorningBufferEnd: getEnv("MORNING_BUFFER_END", "09:30"),
		EODBufferStart:   getEnv("EOD_BUFFER_START", "14:45"),

		FallbackSpot: getEnvFloat("FALLBACK_SPOT", 22347.50),

		WSUpdateInterval: getEnvDuration("WS_UPDATE_INTERVAL", 5*time.Second),
	}
}

// resolveLocation loads the named timezone. When the zone database is
// missing, as on minimal containers, it falls back to fixed IST so
// session math still matches the exchange.
func resolveLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("timezone not found, falling back to fixed IST", "timezone", tz, "error", err)
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float in environment, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
