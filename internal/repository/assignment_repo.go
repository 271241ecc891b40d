package repository

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.AssetAssignment) error
	// CloseTx persists the closing fields of an ACTIVE assignment.
	CloseTx(tx *gorm.DB, a *model.AssetAssignment) error
	// FindActiveByAssetTx returns ErrNotFound when the asset has no ACTIVE assignment.
	FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID) (*model.AssetAssignment, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error)
	FindActiveByAsset(ctx context.Context, assetID uuid.UUID) (*model.AssetAssignment, error)
	List(ctx context.Context, filter dto.AssignmentFilter) ([]model.AssetAssignment, int64, error)
}

type assignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository { return &assignmentRepo{db: db} }

func (r *assignmentRepo) CreateTx(tx *gorm.DB, a *model.AssetAssignment) error {
	return translate(tx.Omit(clause.Associations).Create(a).Error)
}

func (r *assignmentRepo) CloseTx(tx *gorm.DB, a *model.AssetAssignment) error {
	res := tx.Model(&model.AssetAssignment{}).
		Where("id = ? AND status = ?", a.ID, model.AssignmentActive).
		Updates(map[string]interface{}{
			"status":       a.Status,
			"returned_at":  a.ReturnedAt,
			"return_notes": a.ReturnNotes,
			"closed_by_id": a.ClosedByID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID) (*model.AssetAssignment, error) {
	var a model.AssetAssignment
	err := tx.Where("asset_id = ? AND status = ?", assetID, model.AssignmentActive).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assignmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetAssignment, error) {
	var a model.AssetAssignment
	err := r.db.WithContext(ctx).
		Preload("Asset").Preload("AssignedTo").Preload("AssignedBy").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assignmentRepo) FindActiveByAsset(ctx context.Context, assetID uuid.UUID) (*model.AssetAssignment, error) {
	return r.FindActiveByAssetTx(r.db.WithContext(ctx), assetID)
}

func (r *assignmentRepo) List(ctx context.Context, filter dto.AssignmentFilter) ([]model.AssetAssignment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AssetAssignment{})
	if filter.AssetID != "" {
		q = q.Where("asset_id = ?", filter.AssetID)
	}
	if filter.UserID != "" {
		q = q.Where("assigned_to_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := Page(filter.Page, filter.Limit)
	var list []model.AssetAssignment
	err := q.Preload("Asset").Preload("AssignedTo").Preload("AssignedBy").
		Order("assigned_at DESC").Limit(limit).Offset(offset(page, limit)).
		Find(&list).Error
	return list, total, err
}
