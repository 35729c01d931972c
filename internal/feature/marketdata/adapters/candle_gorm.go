package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pb2106/MethaX/internal/feature/marketdata/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/marketdata/usecase"
	"github.com/pb2106/MethaX/internal/platform/metrics"
)

type candleGorm struct {
	db *gorm.DB
}

var _ usecase.CandleRepository = (*candleGorm)(nil)

func NewCandleRepository(db *gorm.DB) *candleGorm {
	return &candleGorm{db: db}
}

type CandleModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:candle_sym_tf_ts,priority:1"`
	Timeframe string    `gorm:"size:8;not null;uniqueIndex:candle_sym_tf_ts,priority:2"`
	Timestamp time.Time `gorm:"not null;uniqueIndex:candle_sym_tf_ts,priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:    e.Symbol,
		Timeframe: string(e.Timeframe),
		Timestamp: e.Timestamp,
		Open:      e.Open,
		High:      e.High,
		Low:       e.Low,
		Close:     e.Close,
		Volume:    e.Volume,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:    m.Symbol,
		Timeframe: entity.Timeframe(m.Timeframe),
		Timestamp: m.Timestamp,
		Open:      m.Open,
		High:      m.High,
		Low:       m.Low,
		Close:     m.Close,
		Volume:    m.Volume,
	}
}

// candleKey identifies one (symbol, timeframe) series within a batch.
type candleKey struct {
	symbol    string
	timeframe string
}

func (r *candleGorm) Upsert(ctx context.Context, candle entity.Candle) (bool, error) {
	inserted, err := r.UpsertBatch(ctx, []entity.Candle{candle})
	return inserted == 1, err
}

// UpsertBatch writes candles in one transaction. The insert count comes from
// the per-series row count before and after the conflict-tolerant create, so
// rewritten bars do not count and writers on other series cannot skew it.
func (r *candleGorm) UpsertBatch(ctx context.Context, candles []entity.Candle) (int64, error) {
	if len(candles) == 0 {
		return 0, nil
	}

	groups := make(map[candleKey][]CandleModel)
	order := make([]candleKey, 0, 1)
	for _, e := range candles {
		k := candleKey{symbol: e.Symbol, timeframe: string(e.Timeframe)}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], toModel(e))
	}

	created := make(map[candleKey]int64, len(order))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range order {
			ms := groups[k]
			before, err := countSeries(tx, k)
			if err != nil {
				return err
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "symbol"}, {Name: "timeframe"}, {Name: "timestamp"}},
				DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
			}).Create(&ms).Error; err != nil {
				return err
			}
			after, err := countSeries(tx, k)
			if err != nil {
				return err
			}
			created[k] = after - before
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var inserted int64
	for _, k := range order {
		n := created[k]
		inserted += n
		metrics.CandlesUpserted.WithLabelValues(k.timeframe, "inserted").Add(float64(n))
		metrics.CandlesUpserted.WithLabelValues(k.timeframe, "updated").Add(float64(int64(len(groups[k])) - n))
	}
	return inserted, nil
}

func countSeries(tx *gorm.DB, k candleKey) (int64, error) {
	var n int64
	err := tx.Model(&CandleModel{}).
		Where("symbol = ? AND timeframe = ?", k.symbol, k.timeframe).
		Count(&n).Error
	return n, err
}

func (r *candleGorm) Latest(ctx context.Context, symbol string, timeframe entity.Timeframe, limit int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := r.db.WithContext(ctx).
		Where("symbol = ? AND timeframe = ?", symbol, string(timeframe)).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	// The index scan yields newest-first; flip to chronological for callers.
	out := make([]entity.Candle, len(rows))
	for i, m := range rows {
		out[len(rows)-1-i] = toEntity(m)
	}
	return out, nil
}

func (r *candleGorm) Count(ctx context.Context, symbol string, timeframe entity.Timeframe) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&CandleModel{}).
		Where("symbol = ? AND timeframe = ?", symbol, string(timeframe)).
		Count(&n).Error
	return n, err
}

func (r *candleGorm) MostRecent(ctx context.Context, symbol string) (*entity.Candle, error) {
	var m CandleModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}
