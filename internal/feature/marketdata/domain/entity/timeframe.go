package entity

// Timeframe identifies a supported bar duration.
type Timeframe string

const (
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe1d  Timeframe = "1d"
)

// Timeframes lists every supported timeframe in ascending bar size.
var Timeframes = []Timeframe{Timeframe5m, Timeframe15m, Timeframe1h, Timeframe1d}

// ParseTimeframe converts a request string into a Timeframe. The second
// return value reports whether the value is supported.
func ParseTimeframe(s string) (Timeframe, bool) {
	tf := Timeframe(s)
	return tf, tf.Valid()
}

// Valid reports whether the timeframe is one of the supported bar durations.
func (tf Timeframe) Valid() bool {
	switch tf {
	case Timeframe5m, Timeframe15m, Timeframe1h, Timeframe1d:
		return true
	}
	return false
}

// Interval returns the upstream chart interval for the timeframe. Yahoo
// labels hourly bars "60m"; the remaining values pass through unchanged.
func (tf Timeframe) Interval() string {
	if tf == Timeframe1h {
		return "60m"
	}
	return string(tf)
}

func (tf Timeframe) String() string { return string(tf) }
