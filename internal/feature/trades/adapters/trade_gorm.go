// Package adapters provides the GORM-backed persistence for the trades feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pb2106/MethaX/internal/feature/trades/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/trades/usecase"
)

// tradeGorm is the GORM implementation of usecase.TradeRepository.
type tradeGorm struct {
	db *gorm.DB
}

var _ usecase.TradeRepository = (*tradeGorm)(nil)

// NewTradeRepository creates a new tradeGorm instance.
func NewTradeRepository(db *gorm.DB) *tradeGorm {
	return &tradeGorm{db: db}
}

// TradeModel is the GORM model for one simulated option trade.
type TradeModel struct {
	ID           uint       `gorm:"primaryKey"`
	Direction    string     `gorm:"size:8;not null"`
	Strike       float64    `gorm:"not null"`
	OptionType   string     `gorm:"size:4;not null"`
	EntryTime    time.Time  `gorm:"not null;index"`
	EntryPrice   float64    `gorm:"not null"`
	EntrySpot    float64    `gorm:"not null"`
	StopLoss     float64    `gorm:"not null"`
	TakeProfit   float64    `gorm:"not null"`
	PositionSize int        `gorm:"not null"`
	ExitTime     *time.Time `gorm:"default:null"`
	ExitPrice    *float64   `gorm:"default:null"`
	ExitSpot     *float64   `gorm:"default:null"`
	ExitReason   string     `gorm:"size:32"`
	PnL          *float64   `gorm:"column:pnl;default:null"`
	PnLR         *float64   `gorm:"column:pnl_r;default:null"`
	Status       string     `gorm:"size:8;not null;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM.
func (TradeModel) TableName() string {
	return "trades"
}

func toEntity(m TradeModel) entity.Trade {
	return entity.Trade{
		ID:           m.ID,
		Direction:    m.Direction,
		Strike:       m.Strike,
		OptionType:   m.OptionType,
		EntryTime:    m.EntryTime,
		EntryPrice:   m.EntryPrice,
		EntrySpot:    m.EntrySpot,
		StopLoss:     m.StopLoss,
		TakeProfit:   m.TakeProfit,
		PositionSize: m.PositionSize,
		ExitTime:     m.ExitTime,
		ExitPrice:    m.ExitPrice,
		ExitSpot:     m.ExitSpot,
		ExitReason:   m.ExitReason,
		PnL:          m.PnL,
		PnLR:         m.PnLR,
		Status:       m.Status,
	}
}

// CountOpen returns the number of rows still in the open state.
func (r *tradeGorm) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TradeModel{}).
		Where("status = ?", entity.StatusOpen).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListRecent returns up to limit trades ordered by entry time, newest first.
func (r *tradeGorm) ListRecent(ctx context.Context, limit int) ([]entity.Trade, error) {
	var rows []TradeModel
	err := r.db.WithContext(ctx).
		Order("entry_time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	trades := make([]entity.Trade, 0, len(rows))
	for _, m := range rows {
		trades = append(trades, toEntity(m))
	}
	return trades, nil
}
