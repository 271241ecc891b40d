package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MaintenanceType string

const (
	MaintenancePreventivo MaintenanceType = "PREVENTIVO"
	MaintenanceCorrectivo MaintenanceType = "CORRECTIVO"
)

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "SCHEDULED"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceCancelled  MaintenanceStatus = "CANCELLED"
)

// Open reports whether the maintenance still blocks a new one on the same asset.
func (s MaintenanceStatus) Open() bool {
	return s == MaintenanceScheduled || s == MaintenanceInProgress
}

// Maintenance follows SCHEDULED → IN_PROGRESS → COMPLETED, or SCHEDULED → CANCELLED.
type Maintenance struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type          MaintenanceType   `gorm:"type:varchar(20);not null"`
	Status        MaintenanceStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED'"`
	Title         string            `gorm:"not null"`
	Description   *string
	ScheduledDate time.Time `gorm:"not null"`
	StartedAt     *time.Time
	CompletedDate *time.Time
	Cost          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Provider      *string
	Notes         *string
	CreatedByID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Asset *Asset `gorm:"foreignKey:AssetID"`
}

func (Maintenance) TableName() string { return "maintenances" }
