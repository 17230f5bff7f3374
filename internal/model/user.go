package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperadmin = "SUPERADMIN"
	RolePramuniaga = "PRAMUNIAGA"
)

// User stores system users with role-based access.
// Role: "SUPERADMIN" | "PRAMUNIAGA"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
