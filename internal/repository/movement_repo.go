package repository

import (
	"context"
	"time"

	"sorty/internal/dto"
	"sorty/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovementRepository is append-only: there is no update or delete.
type MovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.AssetMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.AssetMovement, int64, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.AssetMovement) error {
	return tx.Omit(clause.Associations).Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.AssetMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AssetMovement{})
	if filter.AssetID != "" {
		q = q.Where("asset_id = ?", filter.AssetID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Subtype != "" {
		q = q.Where("subtype = ?", filter.Subtype)
	}
	if from, err := time.Parse("2006-01-02", filter.From); err == nil {
		q = q.Where("movement_date >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", filter.To); err == nil {
		q = q.Where("movement_date < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := Page(filter.Page, filter.Limit)
	var list []model.AssetMovement
	err := q.Preload("Asset").Preload("Actor").
		Order("movement_date DESC, created_at DESC").Limit(limit).Offset(offset(page, limit)).
		Find(&list).Error
	return list, total, err
}
