package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IncidentType string

const (
	IncidentDano              IncidentType = "DANO"
	IncidentPerdida           IncidentType = "PERDIDA"
	IncidentRobo              IncidentType = "ROBO"
	IncidentMalFuncionamiento IncidentType = "MAL_FUNCIONAMIENTO"
)

// Decommissions reports whether reporting this incident removes the asset from inventory.
func (t IncidentType) Decommissions() bool {
	return t == IncidentRobo || t == IncidentPerdida
}

type IncidentStatus string

const (
	IncidentReported      IncidentStatus = "REPORTED"
	IncidentInvestigating IncidentStatus = "INVESTIGATING"
	IncidentResolved      IncidentStatus = "RESOLVED"
	IncidentClosed        IncidentStatus = "CLOSED"
)

// Open reports whether the incident still blocks a new report on the same asset.
func (s IncidentStatus) Open() bool {
	return s == IncidentReported || s == IncidentInvestigating
}

// Incident follows REPORTED → INVESTIGATING → RESOLVED → CLOSED with no skipping.
type Incident struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type         IncidentType   `gorm:"type:varchar(30);not null"`
	Status       IncidentStatus `gorm:"type:varchar(20);not null;default:'REPORTED'"`
	Description  string         `gorm:"not null"`
	IncidentDate time.Time      `gorm:"not null"`
	Cost         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Resolution   *string
	ReportedByID uuid.UUID  `gorm:"type:uuid;not null"`
	ResolvedByID *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Asset *Asset `gorm:"foreignKey:AssetID"`
}

func (Incident) TableName() string { return "incidents" }
