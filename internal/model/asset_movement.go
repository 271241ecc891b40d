package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type MovementType string

const (
	MovementEntrada MovementType = "ENTRADA"
	MovementSalida  MovementType = "SALIDA"
)

type MovementSubtype string

// Entry subtypes.
const (
	SubtypeCompra          MovementSubtype = "COMPRA"
	SubtypeDonacionIn      MovementSubtype = "DONACION_IN"
	SubtypeDevolucion      MovementSubtype = "DEVOLUCION"
	SubtypeTransferenciaIn MovementSubtype = "TRANSFERENCIA_IN"
	SubtypeAjusteEntrada   MovementSubtype = "AJUSTE_ENTRADA"
)

// Exit subtypes.
const (
	SubtypeAsignacion       MovementSubtype = "ASIGNACION"
	SubtypeTransferenciaOut MovementSubtype = "TRANSFERENCIA_OUT"
	SubtypeBaja             MovementSubtype = "BAJA"
	SubtypeDonacionOut      MovementSubtype = "DONACION_OUT"
	SubtypeVenta            MovementSubtype = "VENTA"
	SubtypeAjusteSalida     MovementSubtype = "AJUSTE_SALIDA"
)

var entrySubtypes = map[MovementSubtype]bool{
	SubtypeCompra:          true,
	SubtypeDonacionIn:      true,
	SubtypeDevolucion:      true,
	SubtypeTransferenciaIn: true,
	SubtypeAjusteEntrada:   true,
}

var exitSubtypes = map[MovementSubtype]bool{
	SubtypeAsignacion:       true,
	SubtypeTransferenciaOut: true,
	SubtypeBaja:             true,
	SubtypeDonacionOut:      true,
	SubtypeVenta:            true,
	SubtypeAjusteSalida:     true,
}

// IsEntry reports whether s belongs to the ENTRADA family.
func (s MovementSubtype) IsEntry() bool { return entrySubtypes[s] }

// IsExit reports whether s belongs to the SALIDA family.
func (s MovementSubtype) IsExit() bool { return exitSubtypes[s] }

// RemovesAsset reports whether an exit of this subtype takes the asset out of
// the inventory for good.
func (s MovementSubtype) RemovesAsset() bool {
	return s == SubtypeBaja || s == SubtypeDonacionOut || s == SubtypeVenta
}

// AssetMovement is an append-only ledger entry. Rows are never updated or deleted.
type AssetMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         MovementType    `gorm:"type:varchar(10);not null"`
	Subtype      MovementSubtype `gorm:"type:varchar(30);not null"`
	Quantity     int             `gorm:"not null;default:1"`
	Cost         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Description  *string
	ActorID      uuid.UUID      `gorm:"type:uuid;not null"`
	ReferenceID  *uuid.UUID     `gorm:"type:uuid"` // assignment or incident that produced it
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	MovementDate time.Time      `gorm:"not null"`
	CreatedAt    time.Time

	Asset *Asset `gorm:"foreignKey:AssetID"`
	Actor *User  `gorm:"foreignKey:ActorID"`
}

func (AssetMovement) TableName() string { return "asset_movements" }
