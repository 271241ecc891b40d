package repository

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaintenanceRepository interface {
	CreateTx(tx *gorm.DB, m *model.Maintenance) error
	UpdateTx(tx *gorm.DB, m *model.Maintenance) error
	LockTx(tx *gorm.DB, id uuid.UUID) (*model.Maintenance, error)
	HasOpenTx(tx *gorm.DB, assetID uuid.UUID) (bool, error)
	// LockOpenByAssetTx locks the SCHEDULED/IN_PROGRESS rows of an asset.
	LockOpenByAssetTx(tx *gorm.DB, assetID uuid.UUID) ([]model.Maintenance, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error)
	List(ctx context.Context, filter dto.MaintenanceFilter) ([]model.Maintenance, int64, error)

	DB() *gorm.DB
}

type maintenanceRepo struct{ db *gorm.DB }

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) CreateTx(tx *gorm.DB, m *model.Maintenance) error {
	return translate(tx.Omit(clause.Associations).Create(m).Error)
}

func (r *maintenanceRepo) UpdateTx(tx *gorm.DB, m *model.Maintenance) error {
	return translate(tx.Omit(clause.Associations).Save(m).Error)
}

func (r *maintenanceRepo) LockTx(tx *gorm.DB, id uuid.UUID) (*model.Maintenance, error) {
	var m model.Maintenance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *maintenanceRepo) HasOpenTx(tx *gorm.DB, assetID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.Maintenance{}).
		Where("asset_id = ? AND status IN ?", assetID,
			[]model.MaintenanceStatus{model.MaintenanceScheduled, model.MaintenanceInProgress}).
		Count(&n).Error
	return n > 0, err
}

func (r *maintenanceRepo) LockOpenByAssetTx(tx *gorm.DB, assetID uuid.UUID) ([]model.Maintenance, error) {
	var open []model.Maintenance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ? AND status IN ?", assetID,
			[]model.MaintenanceStatus{model.MaintenanceScheduled, model.MaintenanceInProgress}).
		Find(&open).Error
	return open, err
}

func (r *maintenanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error) {
	var m model.Maintenance
	err := r.db.WithContext(ctx).Preload("Asset").First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *maintenanceRepo) List(ctx context.Context, filter dto.MaintenanceFilter) ([]model.Maintenance, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Maintenance{})
	if filter.AssetID != "" {
		q = q.Where("asset_id = ?", filter.AssetID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := Page(filter.Page, filter.Limit)
	var list []model.Maintenance
	err := q.Preload("Asset").
		Order("scheduled_date DESC").Limit(limit).Offset(offset(page, limit)).
		Find(&list).Error
	return list, total, err
}

func (r *maintenanceRepo) DB() *gorm.DB { return r.db }
