package repository

import (
	"context"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRepository defines the data access contract for assets.
// Lifecycle services mutate assets only through the …Tx methods so the status
// change commits together with the assignment/maintenance/incident row.
type AssetRepository interface {
	Create(ctx context.Context, a *model.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByCode(ctx context.Context, code string) (*model.Asset, error)
	List(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, int64, error)
	// CodesByHolder lists the codes of the assets currently held by userID.
	CodesByHolder(ctx context.Context, userID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// LockTx reads the asset with SELECT … FOR UPDATE. Concurrent lifecycle
	// operations on the same asset serialise on this lock.
	LockTx(tx *gorm.DB, id uuid.UUID) (*model.Asset, error)
	UpdateTx(tx *gorm.DB, a *model.Asset) error
	CountByCategoriesTx(tx *gorm.DB, categoryIDs []uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) AssetRepository { return &assetRepo{db: db} }

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *assetRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("AssignedTo").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assetRepo) FindByCode(ctx context.Context, code string) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("AssignedTo").
		Where("code = ?", code).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assetRepo) List(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Asset{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AssignedToID != "" {
		q = q.Where("assigned_to_id = ?", filter.AssignedToID)
	}
	if filter.Building != "" {
		q = q.Where("building ILIKE ?", "%"+filter.Building+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("(name ILIKE ? OR code ILIKE ? OR serial_number ILIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := Page(filter.Page, filter.Limit)
	var assets []model.Asset
	err := q.Preload("Category").Preload("AssignedTo").
		Order("code ASC").Limit(limit).Offset(offset(page, limit)).
		Find(&assets).Error
	return assets, total, err
}

func (r *assetRepo) CodesByHolder(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).Model(&model.Asset{}).
		Where("assigned_to_id = ?", userID).
		Pluck("code", &codes).Error
	return codes, err
}

func (r *assetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assetRepo) LockTx(tx *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *assetRepo) UpdateTx(tx *gorm.DB, a *model.Asset) error {
	return translate(tx.Omit(clause.Associations).Save(a).Error)
}

func (r *assetRepo) CountByCategoriesTx(tx *gorm.DB, categoryIDs []uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Asset{}).Where("category_id IN ?", categoryIDs).Count(&n).Error
	return n, err
}

func (r *assetRepo) DB() *gorm.DB { return r.db }
