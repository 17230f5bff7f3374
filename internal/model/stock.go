package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock is a batch lot of physical inventory. Quantity is always in the
// product's base unit and never goes negative. Lots are created only by
// purchase intake and decremented only by sale allocation; CreatedAt is the
// FEFO ordering proxy (oldest received first).
type Stock struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchNumber *string
	ExpiredDate *time.Time `gorm:"index"`
	Quantity    int64      `gorm:"not null;default:0;check:quantity >= 0"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
