package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseItemRequest struct {
	ProductID     string          `json:"product_id"      validate:"required,uuid"`
	ProductUnitID string          `json:"product_unit_id" validate:"required,uuid"`
	Amount        int64           `json:"amount"          validate:"required,gt=0"`
	BatchNumber   *string         `json:"batch_number"`
	ExpiredDate   *time.Time      `json:"expired_date"`
	Price         decimal.Decimal `json:"price"           validate:"required"`
}

type CreatePurchaseRequest struct {
	Code         string                `json:"code"          validate:"required,max=50"`
	SupplierID   string                `json:"supplier_id"   validate:"required,uuid"`
	PurchaseDate time.Time             `json:"purchase_date" validate:"required"`
	Note         *string               `json:"note"`
	Items        []PurchaseItemRequest `json:"items"         validate:"required,min=1,dive"`
}

type PurchaseFilter struct {
	Code       string `form:"code"`
	SupplierID string `form:"supplier_id" validate:"omitempty,uuid"`
	UserID     string `form:"user_id"     validate:"omitempty,uuid"`
	// Month filters purchase_date by calendar month, format "YYYY-M".
	Month string `form:"month" validate:"omitempty"`
	Page  int    `form:"page,default=1" validate:"min=1"`
	Size  int    `form:"size,default=10" validate:"min=1,max=100"`
}

type StockResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id,omitempty"`
	BatchNumber *string          `json:"batch_number,omitempty"`
	ExpiredDate *time.Time       `json:"expired_date,omitempty"`
	Quantity    int64            `json:"quantity"`
	CreatedAt   time.Time        `json:"created_at,omitempty"`
	Product     *ProductResponse `json:"product,omitempty"`
}

type PurchaseDetailResponse struct {
	ID            string               `json:"id"`
	PurchaseID    string               `json:"purchase_id"`
	StockID       string               `json:"stock_id"`
	ProductUnitID string               `json:"product_unit_id"`
	Amount        int64                `json:"amount"`
	Price         decimal.Decimal      `json:"price"`
	Stock         *StockResponse       `json:"stock,omitempty"`
	ProductUnit   *ProductUnitResponse `json:"product_unit,omitempty"`
}

type PurchaseResponse struct {
	ID           string                   `json:"id"`
	Code         string                   `json:"code"`
	SupplierID   string                   `json:"supplier_id"`
	UserID       string                   `json:"user_id"`
	PurchaseDate time.Time                `json:"purchase_date"`
	Note         *string                  `json:"note,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	Supplier     *SupplierResponse        `json:"supplier,omitempty"`
	User         *UserResponse            `json:"user,omitempty"`
	Details      []PurchaseDetailResponse `json:"purchase_details"`
}

// PurchaseListItem is the lean projection returned by SearchPurchases.
type PurchaseListItem struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	SupplierID   string            `json:"supplier_id"`
	UserID       string            `json:"user_id"`
	PurchaseDate time.Time         `json:"purchase_date"`
	Supplier     *SupplierResponse `json:"supplier,omitempty"`
	User         *UserResponse     `json:"user,omitempty"`
}
