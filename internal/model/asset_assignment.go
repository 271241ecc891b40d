package model

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentActive      AssignmentStatus = "ACTIVE"
	AssignmentReturned    AssignmentStatus = "RETURNED"
	AssignmentTransferred AssignmentStatus = "TRANSFERRED"
)

// AssetAssignment is a time-bounded custody relationship between one asset and one user.
// At most one row per asset is ACTIVE (partial unique index uniq_asset_assignments_active).
// Closed rows are never mutated again.
type AssetAssignment struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	AssignedToID uuid.UUID        `gorm:"type:uuid;not null;index"`
	AssignedByID uuid.UUID        `gorm:"type:uuid;not null"`
	Status       AssignmentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	AssignedAt   time.Time        `gorm:"not null"`
	ReturnedAt   *time.Time
	Location     *string
	Reason       *string
	Notes        *string
	ReturnNotes  *string
	ClosedByID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Asset      *Asset `gorm:"foreignKey:AssetID"`
	AssignedTo *User  `gorm:"foreignKey:AssignedToID"`
	AssignedBy *User  `gorm:"foreignKey:AssignedByID"`
}

func (AssetAssignment) TableName() string { return "asset_assignments" }
