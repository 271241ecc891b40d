package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetStatus is the denormalised lifecycle status written by the lifecycle services.
type AssetStatus string

const (
	AssetAvailable      AssetStatus = "AVAILABLE"
	AssetInUse          AssetStatus = "IN_USE"
	AssetInRepair       AssetStatus = "IN_REPAIR"
	AssetDecommissioned AssetStatus = "DECOMMISSIONED"
)

// Valid reports whether s is one of the known statuses.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetInUse, AssetInRepair, AssetDecommissioned:
		return true
	}
	return false
}

// Asset is a tracked physical item. AssignedToID is set if and only if the asset
// has exactly one ACTIVE AssetAssignment.
type Asset struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string      `gorm:"uniqueIndex;not null"` // immutable after creation
	Name        string      `gorm:"index;not null"`
	Description *string
	CategoryID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status      AssetStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`

	AssignedToID *uuid.UUID `gorm:"type:uuid;index"`

	Building        *string
	Office          *string
	Laboratory      *string
	CurrentLocation *string

	Brand        *string
	Model        *string
	SerialNumber *string

	AcquisitionDate *time.Time
	AcquisitionCost decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UsefulLifeYears *int
	ResidualValue   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Supplier        *string
	InvoiceNumber   *string

	CreatedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category   *Category `gorm:"foreignKey:CategoryID"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID"`
}

func (Asset) TableName() string { return "assets" }

// BookValue applies straight-line depreciation between the acquisition date and at.
func (a *Asset) BookValue(at time.Time) decimal.Decimal {
	return StraightLineValue(a.AcquisitionCost, a.ResidualValue, a.AcquisitionDate, a.UsefulLifeYears, at)
}

// StraightLineValue depreciates cost down to residual over usefulLifeYears.
// Without an acquisition date or a positive useful life the cost is kept.
func StraightLineValue(cost, residual decimal.Decimal, acquired *time.Time, usefulLifeYears *int, at time.Time) decimal.Decimal {
	if acquired == nil || usefulLifeYears == nil || *usefulLifeYears <= 0 {
		return cost
	}
	if at.Before(*acquired) {
		return cost
	}
	elapsedDays := decimal.NewFromFloat(at.Sub(*acquired).Hours() / 24)
	lifeDays := decimal.NewFromInt(int64(*usefulLifeYears) * 365)
	fraction := elapsedDays.Div(lifeDays)
	if fraction.GreaterThan(decimal.NewFromInt(1)) {
		fraction = decimal.NewFromInt(1)
	}
	return cost.Sub(cost.Sub(residual).Mul(fraction)).Round(2)
}
