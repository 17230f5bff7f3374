package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a wholesale drug distributor.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Address   *string
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Purchases []Purchase `gorm:"foreignKey:SupplierID"`
}
