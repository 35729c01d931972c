package usecase

import "errors"

var (
	// ErrUnsupportedTimeframe is returned when a caller asks for a bar
	// duration outside the supported set.
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

	// ErrPriceUnavailable is returned when every source in the spot price
	// chain failed to produce a usable price.
	ErrPriceUnavailable = errors.New("current price unavailable")
)
