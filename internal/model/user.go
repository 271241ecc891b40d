package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleInventoryManager Role = "INVENTORY_MANAGER"
	RoleAssetResponsible Role = "ASSET_RESPONSIBLE"
)

// User stores system users with role-based access. Only active users can log in
// or receive assets.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(30);not null"`
	Department   *string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
