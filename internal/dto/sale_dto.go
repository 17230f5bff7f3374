package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleItemRequest struct {
	ProductID     string `json:"product_id"      validate:"required,uuid"`
	Quantity      int64  `json:"quantity"        validate:"required,gt=0"`
	ProductUnitID string `json:"product_unit_id" validate:"required,uuid"`
}

type CreateSaleRequest struct {
	TotalPayment decimal.Decimal   `json:"total_payment" validate:"required"`
	Items        []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
}

type SaleFilter struct {
	UserID string `form:"user_id" validate:"omitempty,uuid"`
	// Month filters created_at by calendar month, format "YYYY-M".
	Month     string `form:"month" validate:"omitempty"`
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1" validate:"min=1"`
	Size      int    `form:"size,default=10" validate:"min=1,max=100"`
}

// SaleStockResponse shows one lot draw of a sale line: quantity is the audit
// figure back-converted to the line's original unit.
type SaleStockResponse struct {
	StockID  string          `json:"stock_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Stock    *StockResponse  `json:"stock,omitempty"`
}

type SaleDetailResponse struct {
	ID            string               `json:"id"`
	SaleID        string               `json:"sale_id"`
	ProductID     string               `json:"product_id"`
	ProductUnitID string               `json:"product_unit_id"`
	Quantity      int64                `json:"quantity"`
	Price         decimal.Decimal      `json:"price"`
	Product       *ProductResponse     `json:"product,omitempty"`
	ProductUnit   *ProductUnitResponse `json:"product_unit,omitempty"`
	SaleStocks    []SaleStockResponse  `json:"sale_stocks"`
}

type SaleResponse struct {
	ID           string               `json:"id"`
	Code         string               `json:"code"`
	UserID       string               `json:"user_id"`
	TotalPayment decimal.Decimal      `json:"total_payment"`
	Change       decimal.Decimal      `json:"change"`
	CreatedAt    time.Time            `json:"created_at"`
	User         *UserResponse        `json:"user,omitempty"`
	Details      []SaleDetailResponse `json:"sale_details"`
}

type StockFilter struct {
	Product     string `form:"product"`
	BatchNumber string `form:"batch_number"`
	// BeforeExpired keeps only lots expiring within the next N days.
	BeforeExpired *int `form:"before_expired" validate:"omitempty,min=0"`
	Page          int  `form:"page,default=1" validate:"min=1"`
	Size          int  `form:"size,default=10" validate:"min=1,max=100"`
}
