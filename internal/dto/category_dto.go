package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name                   string           `json:"name"        validate:"required,min=2,max=100"`
	Description            *string          `json:"description"`
	ParentID               *string          `json:"parent_id"   validate:"omitempty,uuid"`
	DefaultCost            *decimal.Decimal `json:"default_cost"`
	DefaultUsefulLifeYears *int             `json:"default_useful_life_years" validate:"omitempty,min=0,max=100"`
	DefaultResidualValue   *decimal.Decimal `json:"default_residual_value"`
}

// UpdateCategoryRequest: ParentID "" turns the category into a root.
type UpdateCategoryRequest struct {
	Name                   *string          `json:"name"        validate:"omitempty,min=2,max=100"`
	Description            *string          `json:"description"`
	ParentID               *string          `json:"parent_id"   validate:"omitempty,uuid"`
	DefaultCost            *decimal.Decimal `json:"default_cost"`
	DefaultUsefulLifeYears *int             `json:"default_useful_life_years" validate:"omitempty,min=0,max=100"`
	DefaultResidualValue   *decimal.Decimal `json:"default_residual_value"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	Description            *string            `json:"description,omitempty"`
	ParentID               *string            `json:"parent_id"`
	DefaultCost            *decimal.Decimal   `json:"default_cost"`
	DefaultUsefulLifeYears *int               `json:"default_useful_life_years"`
	DefaultResidualValue   *decimal.Decimal   `json:"default_residual_value"`
	Children               []CategoryResponse `json:"children,omitempty"`
}
