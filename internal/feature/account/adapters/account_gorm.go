// Package adapters provides the GORM-backed persistence for the account feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pb2106/MethaX/internal/feature/account/domain/entity"
	"github.com/pb2106/MethaX/internal/feature/account/usecase"
)

// accountGorm is the GORM implementation of usecase.AccountRepository.
type accountGorm struct {
	db *gorm.DB
}

var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountRepository creates a new accountGorm instance.
func NewAccountRepository(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// AccountStateModel is the GORM model for one trading day of account state.
type AccountStateModel struct {
	ID                  uint      `gorm:"primaryKey"`
	Date                string    `gorm:"size:10;not null;uniqueIndex"`
	StartingCapital     float64   `gorm:"not null"`
	EndingCapital       *float64  `gorm:"default:null"`
	DailyPnL            float64   `gorm:"column:daily_pnl;not null;default:0"`
	DailyPnLR           float64   `gorm:"column:daily_pnl_r;not null;default:0"`
	TradesCount         int       `gorm:"not null;default:0"`
	Wins                int       `gorm:"not null;default:0"`
	Losses              int       `gorm:"not null;default:0"`
	KillSwitchTriggered bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM.
func (AccountStateModel) TableName() string {
	return "account_state"
}

func toModel(s entity.DailyState) AccountStateModel {
	return AccountStateModel{
		Date:                s.Date,
		StartingCapital:     s.StartingCapital,
		EndingCapital:       s.EndingCapital,
		DailyPnL:            s.DailyPnL,
		DailyPnLR:           s.DailyPnLR,
		TradesCount:         s.TradesCount,
		Wins:                s.Wins,
		Losses:              s.Losses,
		KillSwitchTriggered: s.KillSwitchTriggered,
	}
}

func toEntity(m AccountStateModel) entity.DailyState {
	return entity.DailyState{
		Date:                m.Date,
		StartingCapital:     m.StartingCapital,
		EndingCapital:       m.EndingCapital,
		DailyPnL:            m.DailyPnL,
		DailyPnLR:           m.DailyPnLR,
		TradesCount:         m.TradesCount,
		Wins:                m.Wins,
		Losses:              m.Losses,
		KillSwitchTriggered: m.KillSwitchTriggered,
	}
}

// GetOrCreate inserts seed unless a row for seed.Date already exists, then
// reads the row back. Losing an insert race to a concurrent caller is fine
// because the follow-up read returns whichever row won.
func (r *accountGorm) GetOrCreate(ctx context.Context, seed entity.DailyState) (*entity.DailyState, error) {
	m := toModel(seed)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}

	var row AccountStateModel
	if err := r.db.WithContext(ctx).Where("date = ?", seed.Date).First(&row).Error; err != nil {
		return nil, err
	}
	state := toEntity(row)
	return &state, nil
}

// GetByDate returns the row for the day key, or nil when no row exists.
func (r *accountGorm) GetByDate(ctx context.Context, date string) (*entity.DailyState, error) {
	var row AccountStateModel
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	state := toEntity(row)
	return &state, nil
}
