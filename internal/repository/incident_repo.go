package repository

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IncidentRepository interface {
	CreateTx(tx *gorm.DB, i *model.Incident) error
	UpdateTx(tx *gorm.DB, i *model.Incident) error
	LockTx(tx *gorm.DB, id uuid.UUID) (*model.Incident, error)
	HasOpenTx(tx *gorm.DB, assetID uuid.UUID) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error)
	List(ctx context.Context, filter dto.IncidentFilter) ([]model.Incident, int64, error)

	DB() *gorm.DB
}

type incidentRepo struct{ db *gorm.DB }

func NewIncidentRepository(db *gorm.DB) IncidentRepository { return &incidentRepo{db: db} }

func (r *incidentRepo) CreateTx(tx *gorm.DB, i *model.Incident) error {
	return translate(tx.Omit(clause.Associations).Create(i).Error)
}

func (r *incidentRepo) UpdateTx(tx *gorm.DB, i *model.Incident) error {
	return translate(tx.Omit(clause.Associations).Save(i).Error)
}

func (r *incidentRepo) LockTx(tx *gorm.DB, id uuid.UUID) (*model.Incident, error) {
	var i model.Incident
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

func (r *incidentRepo) HasOpenTx(tx *gorm.DB, assetID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.Incident{}).
		Where("asset_id = ? AND status IN ?", assetID,
			[]model.IncidentStatus{model.IncidentReported, model.IncidentInvestigating}).
		Count(&n).Error
	return n > 0, err
}

func (r *incidentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var i model.Incident
	err := r.db.WithContext(ctx).Preload("Asset").First(&i, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

func (r *incidentRepo) List(ctx context.Context, filter dto.IncidentFilter) ([]model.Incident, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Incident{})
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
	var list []model.Incident
	err := q.Preload("Asset").
		Order("incident_date DESC").Limit(limit).Offset(offset(page, limit)).
		Find(&list).Error
	return list, total, err
}

func (r *incidentRepo) DB() *gorm.DB { return r.db }
