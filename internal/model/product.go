package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable pharmacy item. Physical stock is tracked per batch in
// Stock lots, always denominated in the product's base unit (the ProductUnit
// flagged IsBase).
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	Code         string    `gorm:"uniqueIndex;not null"`
	MinimumStock int64     `gorm:"not null;default:0"`
	// AllowSaleBeforeExpired is the safety buffer in days: lots expiring within
	// this many days are excluded from sale allocation.
	AllowSaleBeforeExpired int  `gorm:"not null;default:30"`
	Description            *string
	Indication             *string
	Contraindication       *string
	SideEffects            *string
	Content                *string
	Dose                   *string
	CategoryID             uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupID                uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Category     *Category     `gorm:"foreignKey:CategoryID"`
	Group        *Group        `gorm:"foreignKey:GroupID"`
	ProductUnits []ProductUnit `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductUnit binds a Unit to a Product with a sale price. Exactly one unit
// per product is IsDefault (display/reference pricing) and exactly one is
// IsBase (the atomic unit every conversion chain terminates at).
type ProductUnit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID    uuid.UUID       `gorm:"type:uuid;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IsDefault bool            `gorm:"not null;default:false"`
	IsBase    bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Unit *Unit `gorm:"foreignKey:UnitID"`
	// FromConversions holds the (at most one) outgoing conversion edge.
	FromConversions []UnitConversion `gorm:"foreignKey:FromProductUnitID;constraint:OnDelete:CASCADE"`
}

// UnitConversion is a directed edge: 1 unit of From = ConversionValue units of
// To. Edges form a singly-linked chain terminating at the base unit; the
// unique index on FromProductUnitID enforces at most one outgoing edge.
type UnitConversion struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FromProductUnitID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	ToProductUnitID   uuid.UUID       `gorm:"type:uuid;not null"`
	ConversionValue   decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt         time.Time

	ToProductUnit *ProductUnit `gorm:"foreignKey:ToProductUnitID"`
}
