package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&CandleModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedCandle creates a test candle in the database for testing.
func seedCandle(t *testing.T, db *gorm.DB, symbol, timeframe string, ts time.Time) *CandleModel {
	t.Helper()

	candle := &CandleModel{
		Symbol:    symbol,
		Timeframe: timeframe,
		Timestamp: ts,
		Open:      100.0,
		High:      110.0,
		Low:       90.0,
		Close:     105.0,
		Volume:    1000,
	}
	err := db.Create(candle).Error
	require.NoError(t, err, "failed to seed candle")

	return candle
}

func TestNewCandleRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewCandleRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestCandleGorm_UpsertBatch(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)

	tests := []struct {
		name         string
		candles      []entity.Candle
		wantInserted int64
		wantErr      bool
		setupFunc    func(t *testing.T, db *gorm.DB)
		validateFunc func(t *testing.T, db *gorm.DB)
	}{
		{
			name: "success: insert single candle",
			candles: []entity.Candle{
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime,
					Open:      22100.0,
					High:      22150.0,
					Low:       22080.0,
					Close:     22120.0,
					Volume:    1000,
				},
			},
			wantInserted: 1,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(1), count, "candle count does not match")
			},
		},
		{
			name: "success: insert multiple candles",
			candles: []entity.Candle{
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime,
					Open:      22100.0,
					High:      22150.0,
					Low:       22080.0,
					Close:     22120.0,
					Volume:    1000,
				},
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime.Add(5 * time.Minute),
					Open:      22120.0,
					High:      22180.0,
					Low:       22110.0,
					Close:     22160.0,
					Volume:    1500,
				},
			},
			wantInserted: 2,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(2), count, "candle count does not match")
			},
		},
		{
			name:         "success: empty slice",
			candles:      []entity.Candle{},
			wantInserted: 0,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(0), count, "candle count should be 0")
			},
		},
		{
			name: "success: rewriting an existing bar counts zero inserts",
			candles: []entity.Candle{
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime,
					Open:      22200.0,
					High:      22260.0,
					Low:       22150.0,
					Close:     22240.0,
					Volume:    2000,
				},
			},
			wantInserted: 0,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(1), count, "candle count should remain 1 after upsert")

				var candle CandleModel
				db.First(&candle)
				assert.Equal(t, 22200.0, candle.Open, "Open should be updated")
				assert.Equal(t, 22260.0, candle.High, "High should be updated")
				assert.Equal(t, 22150.0, candle.Low, "Low should be updated")
				assert.Equal(t, 22240.0, candle.Close, "Close should be updated")
				assert.Equal(t, int64(2000), candle.Volume, "Volume should be updated")
			},
		},
		{
			name: "success: mixed insert and update counts only the insert",
			candles: []entity.Candle{
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime,
					Open:      22200.0,
					High:      22260.0,
					Low:       22150.0,
					Close:     22240.0,
					Volume:    2000,
				},
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime.Add(5 * time.Minute),
					Open:      22240.0,
					High:      22300.0,
					Low:       22220.0,
					Close:     22280.0,
					Volume:    2500,
				},
			},
			wantInserted: 1,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(2), count, "candle count should be 2")
			},
		},
		{
			name: "success: batch spanning two timeframes",
			candles: []entity.Candle{
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe5m,
					Timestamp: baseTime,
					Open:      22200.0,
					High:      22260.0,
					Low:       22150.0,
					Close:     22240.0,
					Volume:    2000,
				},
				{
					Symbol:    "NIFTY",
					Timeframe: entity.Timeframe15m,
					Timestamp: baseTime,
					Open:      22100.0,
					High:      22260.0,
					Low:       22080.0,
					Close:     22240.0,
					Volume:    6000,
				},
			},
			wantInserted: 1,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&CandleModel{}).Count(&count)
				assert.Equal(t, int64(2), count, "one row per timeframe expected")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCandleRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			inserted, err := repo.UpsertBatch(context.Background(), tt.candles)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantInserted, inserted, "inserted count does not match")
				if tt.validateFunc != nil {
					tt.validateFunc(t, db)
				}
			}
		})
	}
}

func TestCandleGorm_Upsert(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)

	candle := entity.Candle{
		Symbol:    "NIFTY",
		Timeframe: entity.Timeframe1d,
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Open:      22100.0,
		High:      22300.0,
		Low:       22000.0,
		Close:     22250.0,
		Volume:    0,
	}

	created, err := repo.Upsert(context.Background(), candle)
	require.NoError(t, err)
	assert.True(t, created, "first write should create the row")

	candle.Close = 22280.0
	created, err = repo.Upsert(context.Background(), candle)
	require.NoError(t, err)
	assert.False(t, created, "second write should update in place")

	var row CandleModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 22280.0, row.Close, "Close should be updated")
}

func TestCandleGorm_Latest(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)

	tests := []struct {
		name         string
		symbol       string
		timeframe    entity.Timeframe
		limit        int
		wantErr      bool
		setupFunc    func(t *testing.T, db *gorm.DB)
		validateFunc func(t *testing.T, candles []entity.Candle)
	}{
		{
			name:      "success: find candles by symbol and timeframe",
			symbol:    "NIFTY",
			timeframe: entity.Timeframe5m,
			limit:     10,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
				seedCandle(t, db, "NIFTY", "5m", baseTime.Add(5*time.Minute))
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Len(t, candles, 2, "should return 2 candles")
			},
		},
		{
			name:      "success: empty result when no matching candles",
			symbol:    "NOTFOUND",
			timeframe: entity.Timeframe5m,
			limit:     10,
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Empty(t, candles, "should return empty slice")
			},
		},
		{
			name:      "success: filter by symbol",
			symbol:    "NIFTY",
			timeframe: entity.Timeframe5m,
			limit:     10,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
				seedCandle(t, db, "BANKNIFTY", "5m", baseTime)
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Len(t, candles, 1, "should return only NIFTY candle")
				assert.Equal(t, "NIFTY", candles[0].Symbol)
			},
		},
		{
			name:      "success: filter by timeframe",
			symbol:    "NIFTY",
			timeframe: entity.Timeframe5m,
			limit:     10,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
				seedCandle(t, db, "NIFTY", "1d", baseTime)
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Len(t, candles, 1, "should return only the 5m series")
				assert.Equal(t, entity.Timeframe5m, candles[0].Timeframe)
			},
		},
		{
			name:      "success: limit keeps the most recent bars",
			symbol:    "NIFTY",
			timeframe: entity.Timeframe5m,
			limit:     2,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				for i := 0; i < 5; i++ {
					seedCandle(t, db, "NIFTY", "5m", baseTime.Add(time.Duration(i)*5*time.Minute))
				}
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Len(t, candles, 2, "should return only 2 candles")
				assert.Equal(t, baseTime.Add(20*time.Minute).Unix(), candles[1].Timestamp.Unix(), "newest bar should survive the limit")
			},
		},
		{
			name:      "success: results ordered by time ascending",
			symbol:    "NIFTY",
			timeframe: entity.Timeframe5m,
			limit:     10,
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedCandle(t, db, "NIFTY", "5m", baseTime)
				seedCandle(t, db, "NIFTY", "5m", baseTime.Add(10*time.Minute))
				seedCandle(t, db, "NIFTY", "5m", baseTime.Add(5*time.Minute))
			},
			validateFunc: func(t *testing.T, candles []entity.Candle) {
				assert.Len(t, candles, 3, "should return 3 candles")
				assert.True(t, candles[0].Timestamp.Before(candles[1].Timestamp), "first should be older than second")
				assert.True(t, candles[1].Timestamp.Before(candles[2].Timestamp), "second should be older than third")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewCandleRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			candles, err := repo.Latest(context.Background(), tt.symbol, tt.timeframe, tt.limit)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.validateFunc != nil {
					tt.validateFunc(t, candles)
				}
			}
		})
	}
}

func TestCandleGorm_Count(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)

	baseTime := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)
	seedCandle(t, db, "NIFTY", "5m", baseTime)
	seedCandle(t, db, "NIFTY", "5m", baseTime.Add(5*time.Minute))
	seedCandle(t, db, "NIFTY", "1d", baseTime)

	count, err := repo.Count(context.Background(), "NIFTY", entity.Timeframe5m)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "count should cover only the 5m series")

	count, err = repo.Count(context.Background(), "NIFTY", entity.Timeframe15m)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "count should be 0 for an empty series")
}

func TestCandleGorm_MostRecent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)

	got, err := repo.MostRecent(context.Background(), "NIFTY")
	require.NoError(t, err)
	assert.Nil(t, got, "empty store should yield nil without an error")

	baseTime := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)
	seedCandle(t, db, "NIFTY", "1d", baseTime)
	newest := seedCandle(t, db, "NIFTY", "5m", baseTime.Add(6*time.Hour))

	got, err = repo.MostRecent(context.Background(), "NIFTY")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.Timestamp.Unix(), got.Timestamp.Unix(), "newest bar across timeframes expected")
	assert.Equal(t, entity.Timeframe5m, got.Timeframe)
}

func TestCandleGorm_Latest_EntityMapping(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCandleRepository(db)

	testTime := time.Date(2024, 6, 14, 9, 15, 0, 0, time.UTC)
	candle := &CandleModel{
		Symbol:    "NIFTY",
		Timeframe: "5m",
		Timestamp: testTime,
		Open:      23465.6,
		High:      23490.1,
		Low:       23440.25,
		Close:     23482.3,
		Volume:    312000,
	}
	err := db.Create(candle).Error
	require.NoError(t, err)

	result, err := repo.Latest(context.Background(), "NIFTY", entity.Timeframe5m, 1)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "NIFTY", result[0].Symbol, "Symbol does not match")
	assert.Equal(t, entity.Timeframe5m, result[0].Timeframe, "Timeframe does not match")
	assert.Equal(t, testTime.Unix(), result[0].Timestamp.Unix(), "Timestamp does not match")
	assert.Equal(t, 23465.6, result[0].Open, "Open does not match")
	assert.Equal(t, 23490.1, result[0].High, "High does not match")
	assert.Equal(t, 23440.25, result[0].Low, "Low does not match")
	assert.Equal(t, 23482.3, result[0].Close, "Close does not match")
	assert.Equal(t, int64(312000), result[0].Volume, "Volume does not match")
}
