package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a supplier invoice bringing stock into the ledger. The
// (Code, SupplierID) pair is unique: the same invoice may not be booked twice.
type Purchase struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string    `gorm:"uniqueIndex:idx_purchase_code_supplier;not null"`
	SupplierID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_purchase_code_supplier;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PurchaseDate time.Time `gorm:"not null"`
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier        `gorm:"foreignKey:SupplierID"`
	User     *User            `gorm:"foreignKey:UserID"`
	Details  []PurchaseDetail `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseDetail is one invoice line. Each line owns exactly one Stock lot
// created at intake; Amount is in the line's ProductUnit denomination while
// the lot quantity is the base-unit equivalent.
type PurchaseDetail struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductUnitID uuid.UUID       `gorm:"type:uuid;not null"`
	StockID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        int64           `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time

	ProductUnit *ProductUnit `gorm:"foreignKey:ProductUnitID"`
	Stock       *Stock       `gorm:"foreignKey:StockID"`
}
