package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AssignRequest struct {
	AssetID      string  `json:"asset_id"       validate:"required,uuid"`
	AssignedToID string  `json:"assigned_to_id" validate:"required,uuid"`
	Location     *string `json:"location"       validate:"omitempty,max=200"`
	Reason       *string `json:"reason"`
	Notes        *string `json:"notes"`
}

type ReturnRequest struct {
	AssetID string  `json:"asset_id" validate:"required,uuid"`
	Notes   *string `json:"notes"`
}

type TransferRequest struct {
	AssetID         string  `json:"asset_id"           validate:"required,uuid"`
	NewAssignedToID string  `json:"new_assigned_to_id" validate:"required,uuid"`
	Building        *string `json:"building"`
	Office          *string `json:"office"`
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type AssignmentFilter struct {
	AssetID string `form:"asset_id" validate:"omitempty,uuid"`
	UserID  string `form:"user_id"  validate:"omitempty,uuid"`
	Status  string `form:"status"   validate:"omitempty,oneof=ACTIVE RETURNED TRANSFERRED"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AssignmentResponse struct {
	ID             string  `json:"id"`
	AssetID        string  `json:"asset_id"`
	AssetCode      string  `json:"asset_code,omitempty"`
	AssetName      string  `json:"asset_name,omitempty"`
	AssignedToID   string  `json:"assigned_to_id"`
	AssignedToName string  `json:"assigned_to_name,omitempty"`
	AssignedByID   string  `json:"assigned_by_id"`
	AssignedByName string  `json:"assigned_by_name,omitempty"`
	Status         string  `json:"status"`
	AssignedAt     string  `json:"assigned_at"`
	ReturnedAt     *string `json:"returned_at"`
	Location       *string `json:"location"`
	Reason         *string `json:"reason"`
	Notes          *string `json:"notes"`
	ReturnNotes    *string `json:"return_notes"`
}

type AssignmentListResponse struct {
	Data       []AssignmentResponse `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}
