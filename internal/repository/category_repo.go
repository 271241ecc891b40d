package repository

import (
	"context"

	"sorty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines CRUD operations for Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	ListAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error

	LockTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error)
	ChildIDsTx(tx *gorm.DB, id uuid.UUID) ([]uuid.UUID, error)
	DeleteTx(tx *gorm.DB, ids []uuid.UUID) error

	DB() *gorm.DB
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Preload("Children").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *categoryRepo) LockTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) ChildIDsTx(tx *gorm.DB, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.Category{}).Where("parent_id = ?", id).Pluck("id", &ids).Error
	return ids, err
}

// DeleteTx removes the given categories, children before parents being the
// caller's responsibility.
func (r *categoryRepo) DeleteTx(tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := tx.Delete(&model.Category{}, "id = ?", id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *categoryRepo) DB() *gorm.DB { return r.db }
