package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a checkout transaction. Code is the human-readable receipt number
// "PJ-YYMMDD####" with a daily sequence; the unique index is the last line of
// defense against two concurrent sales drawing the same sequence.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string          `gorm:"uniqueIndex;not null"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPayment decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Change       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time       `gorm:"index"`
	UpdatedAt    time.Time

	User    *User        `gorm:"foreignKey:UserID"`
	Details []SaleDetail `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleDetail is one line of a sale: Quantity in the requested ProductUnit's
// denomination, Price the unit price at sale time.
type SaleDetail struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductUnitID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      int64           `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time

	Product     *Product     `gorm:"foreignKey:ProductID"`
	ProductUnit *ProductUnit `gorm:"foreignKey:ProductUnitID"`
	SaleStocks  []SaleStock  `gorm:"foreignKey:SaleDetailID;constraint:OnDelete:CASCADE"`
}

// SaleStock records how much of a detail line was drawn from which lot — the
// FEFO allocation result. Quantity is back-converted to the detail's original
// unit for audit display and may be fractional (rounded half-up to 4 dp).
type SaleStock struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleDetailID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockID      uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt    time.Time

	Stock *Stock `gorm:"foreignKey:StockID"`
}
