package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportIncidentRequest struct {
	AssetID      string           `json:"asset_id"      validate:"required,uuid"`
	Type         string           `json:"type"          validate:"required,oneof=DANO PERDIDA ROBO MAL_FUNCIONAMIENTO"`
	Description  string           `json:"description"   validate:"required,min=3"`
	IncidentDate *time.Time       `json:"incident_date"`
	Cost         *decimal.Decimal `json:"cost"`
}

type ResolveIncidentRequest struct {
	Resolution string           `json:"resolution" validate:"required,min=3"`
	Cost       *decimal.Decimal `json:"cost"`
}

type IncidentFilter struct {
	AssetID string `form:"asset_id" validate:"omitempty,uuid"`
	Status  string `form:"status"   validate:"omitempty,oneof=REPORTED INVESTIGATING RESOLVED CLOSED"`
	Type    string `form:"type"     validate:"omitempty,oneof=DANO PERDIDA ROBO MAL_FUNCIONAMIENTO"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type IncidentResponse struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"asset_id"`
	AssetCode    string          `json:"asset_code,omitempty"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	IncidentDate string          `json:"incident_date"`
	Cost         decimal.Decimal `json:"cost"`
	Resolution   *string         `json:"resolution"`
	ReportedByID string          `json:"reported_by_id"`
	ResolvedByID *string         `json:"resolved_by_id"`
	ResolvedAt   *string         `json:"resolved_at"`
	ClosedAt     *string         `json:"closed_at"`
}

type IncidentListResponse struct {
	Data       []IncidentResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
