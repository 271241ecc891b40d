package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateAssetRequest struct {
	Code            string           `json:"code"              validate:"required,min=1,max=50"`
	Name            string           `json:"name"              validate:"required,min=2,max=200"`
	Description     *string          `json:"description"`
	CategoryID      string           `json:"category_id"       validate:"required,uuid"`
	Building        *string          `json:"building"`
	Office          *string          `json:"office"`
	Laboratory      *string          `json:"laboratory"`
	CurrentLocation *string          `json:"current_location"`
	Brand           *string          `json:"brand"`
	Model           *string          `json:"model"`
	SerialNumber    *string          `json:"serial_number"`
	AcquisitionDate *time.Time       `json:"acquisition_date"`
	AcquisitionCost *decimal.Decimal `json:"acquisition_cost"`
	UsefulLifeYears *int             `json:"useful_life_years" validate:"omitempty,min=0,max=100"`
	ResidualValue   *decimal.Decimal `json:"residual_value"`
	Supplier        *string          `json:"supplier"`
	InvoiceNumber   *string          `json:"invoice_number"`
}

// UpdateAssetRequest carries only the fields to change. Code is accepted so the
// service can reject attempts to change it.
type UpdateAssetRequest struct {
	Code            *string          `json:"code"`
	Name            *string          `json:"name"              validate:"omitempty,min=2,max=200"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"category_id"       validate:"omitempty,uuid"`
	Building        *string          `json:"building"`
	Office          *string          `json:"office"`
	Laboratory      *string          `json:"laboratory"`
	Brand           *string          `json:"brand"`
	Model           *string          `json:"model"`
	SerialNumber    *string          `json:"serial_number"`
	AcquisitionDate *time.Time       `json:"acquisition_date"`
	AcquisitionCost *decimal.Decimal `json:"acquisition_cost"`
	UsefulLifeYears *int             `json:"useful_life_years" validate:"omitempty,min=0,max=100"`
	ResidualValue   *decimal.Decimal `json:"residual_value"`
	Supplier        *string          `json:"supplier"`
	InvoiceNumber   *string          `json:"invoice_number"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type AssetFilter struct {
	Status       string `form:"status"         validate:"omitempty,oneof=AVAILABLE IN_USE IN_REPAIR DECOMMISSIONED"`
	CategoryID   string `form:"category_id"    validate:"omitempty,uuid"`
	AssignedToID string `form:"assigned_to_id" validate:"omitempty,uuid"`
	Building     string `form:"building"`
	Search       string `form:"search"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AssetResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	Status          string          `json:"status"`
	AssignedToID    *string         `json:"assigned_to_id"`
	AssignedToName  *string         `json:"assigned_to_name,omitempty"`
	Building        *string         `json:"building"`
	Office          *string         `json:"office"`
	Laboratory      *string         `json:"laboratory"`
	CurrentLocation *string         `json:"current_location"`
	Brand           *string         `json:"brand"`
	Model           *string         `json:"model"`
	SerialNumber    *string         `json:"serial_number"`
	AcquisitionDate *string         `json:"acquisition_date"`
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	UsefulLifeYears *int            `json:"useful_life_years"`
	ResidualValue   decimal.Decimal `json:"residual_value"`
	BookValue       decimal.Decimal `json:"book_value"`
	Supplier        *string         `json:"supplier"`
	InvoiceNumber   *string         `json:"invoice_number"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type AssetListResponse struct {
	Data       []AssetResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
