package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseFactor_WalksChainToBase(t *testing.T) {
	repo := newStubProductRepo()
	// tablet (base) ← strip (x10) ← box (x10)
	_, ids := seedProduct(repo, "Paracetamol", 30,
		unitSpec{price: decimal.NewFromInt(500), isDefault: true},
		unitSpec{price: decimal.NewFromInt(4500), factor: decimal.NewFromInt(10)},
		unitSpec{price: decimal.NewFromInt(40000), factor: decimal.NewFromInt(10)},
	)

	box, err := repo.FindUnitByID(context.Background(), ids[2])
	require.NoError(t, err)

	factor, err := resolveBaseFactor(context.Background(), repo, box)
	require.NoError(t, err)
	assert.True(t, factor.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(300), toBaseQuantity(3, factor))
}

func TestResolveBaseFactor_BaseUnitIsIdentity(t *testing.T) {
	repo := newStubProductRepo()
	_, ids := seedProduct(repo, "Paracetamol", 30,
		unitSpec{price: decimal.NewFromInt(500), isDefault: true},
	)

	base, err := repo.FindUnitByID(context.Background(), ids[0])
	require.NoError(t, err)

	factor, err := resolveBaseFactor(context.Background(), repo, base)
	require.NoError(t, err)
	assert.True(t, factor.Equal(decimal.NewFromInt(1)))
}

func TestToBaseQuantity_FloorsFractions(t *testing.T) {
	factor := decimal.RequireFromString("2.5")
	assert.Equal(t, int64(7), toBaseQuantity(3, factor))
	assert.Equal(t, int64(2), toBaseQuantity(1, factor))
}

func TestResolveBaseFactor_NoPath(t *testing.T) {
	repo := newStubProductRepo()
	orphan := &model.ProductUnit{ID: uuid.New(), ProductID: uuid.New()}
	repo.units[orphan.ID] = orphan

	_, err := resolveBaseFactor(context.Background(), repo, orphan)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "no conversion path")
}

func TestResolveBaseFactor_CycleDetected(t *testing.T) {
	repo := newStubProductRepo()
	a := &model.ProductUnit{ID: uuid.New()}
	b := &model.ProductUnit{ID: uuid.New()}
	repo.units[a.ID] = a
	repo.units[b.ID] = b
	repo.conversions[a.ID] = &model.UnitConversion{
		FromProductUnitID: a.ID, ToProductUnitID: b.ID, ConversionValue: decimal.NewFromInt(2),
	}
	repo.conversions[b.ID] = &model.UnitConversion{
		FromProductUnitID: b.ID, ToProductUnitID: a.ID, ConversionValue: decimal.NewFromInt(2),
	}

	_, err := resolveBaseFactor(context.Background(), repo, a)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusOf(err))
}
