package dto

import "github.com/shopspring/decimal"

// CreateProductUnitRequest declares one unit of a product. Units are listed
// smallest first: the first entry becomes the base unit, and every later
// entry must carry the conversion_value into the previous one (1 of this
// unit = conversion_value of the preceding unit).
type CreateProductUnitRequest struct {
	UnitID          string           `json:"unit_id"          validate:"required,uuid"`
	Price           decimal.Decimal  `json:"price"            validate:"required"`
	ConversionValue *decimal.Decimal `json:"conversion_value" validate:"omitempty"`
	IsDefault       bool             `json:"is_default"`
}

type CreateProductRequest struct {
	Name                   string                     `json:"name"          validate:"required,max=100"`
	Code                   string                     `json:"code"          validate:"required,max=50"`
	MinimumStock           int64                      `json:"minimum_stock" validate:"min=0"`
	AllowSaleBeforeExpired int                        `json:"allow_sale_before_expired" validate:"min=0"`
	Description            *string                    `json:"description"`
	Indication             *string                    `json:"indication"`
	Contraindication       *string                    `json:"contraindication"`
	SideEffects            *string                    `json:"side_effects"`
	Content                *string                    `json:"content"`
	Dose                   *string                    `json:"dose"`
	CategoryID             string                     `json:"category_id"   validate:"required,uuid"`
	GroupID                string                     `json:"group_id"      validate:"required,uuid"`
	ProductUnits           []CreateProductUnitRequest `json:"product_units" validate:"required,min=1,dive"`
}

type UpdateProductRequest struct {
	Name                   string  `json:"name"          validate:"required,max=100"`
	Code                   string  `json:"code"          validate:"required,max=50"`
	MinimumStock           int64   `json:"minimum_stock" validate:"min=0"`
	AllowSaleBeforeExpired int     `json:"allow_sale_before_expired" validate:"min=0"`
	Description            *string `json:"description"`
	Indication             *string `json:"indication"`
	Contraindication       *string `json:"contraindication"`
	SideEffects            *string `json:"side_effects"`
	Content                *string `json:"content"`
	Dose                   *string `json:"dose"`
	CategoryID             string  `json:"category_id" validate:"required,uuid"`
	GroupID                string  `json:"group_id"    validate:"required,uuid"`
}

type ProductFilter struct {
	Name       string `form:"name"`
	Code       string `form:"code"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	GroupID    string `form:"group_id"    validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Size       int    `form:"size,default=10" validate:"min=1,max=100"`
}

type UnitConversionResponse struct {
	ID                string          `json:"id"`
	FromProductUnitID string          `json:"from_product_unit_id"`
	ToProductUnitID   string          `json:"to_product_unit_id"`
	ConversionValue   decimal.Decimal `json:"conversion_value"`
}

type ProductUnitResponse struct {
	ID              string                   `json:"id"`
	UnitID          string                   `json:"unit_id"`
	Price           decimal.Decimal          `json:"price"`
	IsDefault       bool                     `json:"is_default"`
	IsBase          bool                     `json:"is_base"`
	Unit            *NamedResponse           `json:"unit,omitempty"`
	UnitConversions []UnitConversionResponse `json:"unit_conversions,omitempty"`
}

type ProductResponse struct {
	ID                     string                `json:"id"`
	Name                   string                `json:"name"`
	Code                   string                `json:"code"`
	MinimumStock           int64                 `json:"minimum_stock"`
	AllowSaleBeforeExpired int                   `json:"allow_sale_before_expired"`
	Description            *string               `json:"description,omitempty"`
	Indication             *string               `json:"indication,omitempty"`
	Contraindication       *string               `json:"contraindication,omitempty"`
	SideEffects            *string               `json:"side_effects,omitempty"`
	Content                *string               `json:"content,omitempty"`
	Dose                   *string               `json:"dose,omitempty"`
	CategoryID             string                `json:"category_id,omitempty"`
	GroupID                string                `json:"group_id,omitempty"`
	ProductUnits           []ProductUnitResponse `json:"product_units,omitempty"`
}

// PriceCheckResponse is the public price lookup payload, cached in redis.
type PriceCheckResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
}
