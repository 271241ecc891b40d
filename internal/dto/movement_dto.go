package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest is shared by POST /v1/movements/entry and /v1/movements/exit.
// Quantity defaults to 1 when omitted.
type MovementRequest struct {
	AssetID      string                 `json:"asset_id"      validate:"required,uuid"`
	Subtype      string                 `json:"subtype"       validate:"required"`
	Quantity     *int                   `json:"quantity"`
	Cost         *decimal.Decimal       `json:"cost"`
	Description  *string                `json:"description"`
	MovementDate *time.Time             `json:"movement_date"`
	Metadata     map[string]interface{} `json:"metadata"`
}

type MovementFilter struct {
	AssetID string `form:"asset_id" validate:"omitempty,uuid"`
	Type    string `form:"type"     validate:"omitempty,oneof=ENTRADA SALIDA"`
	Subtype string `form:"subtype"`
	From    string `form:"from"` // YYYY-MM-DD
	To      string `form:"to"`   // YYYY-MM-DD, inclusive
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type MovementResponse struct {
	ID           string                 `json:"id"`
	AssetID      string                 `json:"asset_id"`
	AssetCode    string                 `json:"asset_code,omitempty"`
	Type         string                 `json:"type"`
	Subtype      string                 `json:"subtype"`
	Quantity     int                    `json:"quantity"`
	Cost         decimal.Decimal        `json:"cost"`
	Description  *string                `json:"description"`
	ActorID      string                 `json:"actor_id"`
	ActorName    string                 `json:"actor_name,omitempty"`
	ReferenceID  *string                `json:"reference_id"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	MovementDate string                 `json:"movement_date"`
}

type MovementListResponse struct {
	Data       []MovementResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
