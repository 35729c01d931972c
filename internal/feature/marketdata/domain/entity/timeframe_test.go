package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
)

func TestParseTimeframe(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expected   entity.Timeframe
		expectedOK bool
	}{
		{name: "5 minutes", input: "5m", expected: entity.Timeframe5m, expectedOK: true},
		{name: "15 minutes", input: "15m", expected: entity.Timeframe15m, expectedOK: true},
		{name: "1 hour", input: "1h", expected: entity.Timeframe1h, expectedOK: true},
		{name: "1 day", input: "1d", expected: entity.Timeframe1d, expectedOK: true},
		{name: "unsupported value", input: "2m", expectedOK: false},
		{name: "empty string", input: "", expectedOK: false},
		{name: "upstream alias is not accepted", input: "60m", expectedOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tf, ok := entity.ParseTimeframe(tc.input)
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, tc.expected, tf)
			}
		})
	}
}

func TestTimeframe_Interval(t *testing.T) {
	testCases := []struct {
		tf       entity.Timeframe
		expected string
	}{
		{tf: entity.Timeframe5m, expected: "5m"},
		{tf: entity.Timeframe15m, expected: "15m"},
		{tf: entity.Timeframe1h, expected: "60m"},
		{tf: entity.Timeframe1d, expected: "1d"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.tf), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.tf.Interval())
		})
	}
}
