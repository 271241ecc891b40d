package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies assets in a tree of depth ≤ 2. The default financial
// values are copied into an asset at creation time when the request omits them.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`

	DefaultCost            *decimal.Decimal `gorm:"type:numeric(14,2)"`
	DefaultUsefulLifeYears *int
	DefaultResidualValue   *decimal.Decimal `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Parent   *Category  `gorm:"foreignKey:ParentID"`
	Children []Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }
