package service

import (
	"context"
	"errors"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxConversionDepth bounds the conversion chain walk. Chains are built as a
// strict list at product creation, so any walk this deep means corrupted data.
const maxConversionDepth = 16

// resolveBaseFactor walks the conversion chain from pu down to the product's
// base unit and returns the multiplier converting one pu into base units.
func resolveBaseFactor(ctx context.Context, products repository.ProductRepository, pu *model.ProductUnit) (decimal.Decimal, error) {
	factor := decimal.NewFromInt(1)
	current := pu
	for depth := 0; depth < maxConversionDepth; depth++ {
		if current.IsBase {
			return factor, nil
		}
		conv, err := products.FindConversionFrom(ctx, current.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Decimal{}, apierror.Validation("product unit %s has no conversion path to the base unit", current.ID)
		}
		if err != nil {
			return decimal.Decimal{}, err
		}
		factor = factor.Mul(conv.ConversionValue)
		current, err = products.FindUnitByID(ctx, conv.ToProductUnitID)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return decimal.Decimal{}, apierror.Internal("conversion cycle detected at product unit %s", pu.ID)
}

// toBaseQuantity converts amount of a unit with the given base factor into
// whole base units, flooring any fractional remainder.
func toBaseQuantity(amount int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Floor().IntPart()
}
