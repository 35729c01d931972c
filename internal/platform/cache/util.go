package cache

import (
	"time"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
)

// barLength maps a timeframe to the duration of one bar.
func barLength(timeframe entity.Timeframe) time.Duration {
	switch timeframe {
	case entity.Timeframe5m:
		return 5 * time.Minute
	case entity.Timeframe15m:
		return 15 * time.Minute
	case entity.Timeframe1h:
		return time.Hour
	case entity.Timeframe1d:
		return 24 * time.Hour
	default:
		return 0
	}
}

// TTLUntilNextBar returns how long a cached listing stays useful: until the
// timeframe's next bar opens. Boundaries are epoch-aligned, matching how the
// provider cuts bars. Unknown timeframes get one minute, and reads just
// before a boundary keep a small floor so entries are not written already
// expired.
func TTLUntilNextBar(timeframe entity.Timeframe, now time.Time) time.Duration {
	bar := barLength(timeframe)
	if bar == 0 {
		return time.Minute
	}

	next := now.Truncate(bar).Add(bar)
	ttl := next.Sub(now)
	if ttl < 5*time.Second {
		ttl = 5 * time.Second
	}
	return ttl
}
