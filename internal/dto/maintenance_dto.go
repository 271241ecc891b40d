package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ScheduleMaintenanceRequest struct {
	AssetID       string           `json:"asset_id"       validate:"required,uuid"`
	Type          string           `json:"type"           validate:"required,oneof=PREVENTIVO CORRECTIVO"`
	Title         string           `json:"title"          validate:"required,min=3,max=200"`
	Description   *string          `json:"description"`
	ScheduledDate time.Time        `json:"scheduled_date" validate:"required"`
	Cost          *decimal.Decimal `json:"cost"`
	Provider      *string          `json:"provider"`
	Notes         *string          `json:"notes"`
}

type UpdateMaintenanceRequest struct {
	Title         *string          `json:"title"          validate:"omitempty,min=3,max=200"`
	Description   *string          `json:"description"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
	Cost          *decimal.Decimal `json:"cost"`
	Provider      *string          `json:"provider"`
	Notes         *string          `json:"notes"`
}

type CompleteMaintenanceRequest struct {
	Cost  *decimal.Decimal `json:"cost"`
	Notes *string          `json:"notes"`
}

type CancelMaintenanceRequest struct {
	Reason *string `json:"reason"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MaintenanceFilter struct {
	AssetID string `form:"asset_id" validate:"omitempty,uuid"`
	Status  string `form:"status"   validate:"omitempty,oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELLED"`
	Type    string `form:"type"     validate:"omitempty,oneof=PREVENTIVO CORRECTIVO"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaintenanceResponse struct {
	ID            string          `json:"id"`
	AssetID       string          `json:"asset_id"`
	AssetCode     string          `json:"asset_code,omitempty"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	ScheduledDate string          `json:"scheduled_date"`
	StartedAt     *string         `json:"started_at"`
	CompletedDate *string         `json:"completed_date"`
	Cost          decimal.Decimal `json:"cost"`
	Provider      *string         `json:"provider"`
	Notes         *string         `json:"notes"`
	CreatedByID   string          `json:"created_by_id"`
}

type MaintenanceListResponse struct {
	Data       []MaintenanceResponse `json:"data"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}
