package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPurchaseSvc() (PurchaseService, *stubPurchaseRepo, *stubStockRepo, *stubProductRepo, *stubSupplierRepo) {
	purchaseRepo := newStubPurchaseRepo()
	stockRepo := newStubStockRepo()
	productRepo := newStubProductRepo()
	supplierRepo := newStubSupplierRepo()
	svc := NewPurchaseService(purchaseRepo, stockRepo, productRepo, supplierRepo, zerolog.Nop())
	return svc, purchaseRepo, stockRepo, productRepo, supplierRepo
}

func seedSupplier(repo *stubSupplierRepo, name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), Name: name}
	_ = repo.Create(context.Background(), s)
	return s
}

func TestCreatePurchase_ConvertsAmountToBaseLot(t *testing.T) {
	svc, purchaseRepo, stockRepo, productRepo, supplierRepo := buildPurchaseSvc()
	supplier := seedSupplier(supplierRepo, "PT Kimia Farma")
	// tablet (base) ← strip (x10)
	p, ids := seedProduct(productRepo, "Paracetamol", 30,
		unitSpec{price: decimal.NewFromInt(500), isDefault: true},
		unitSpec{price: decimal.NewFromInt(4500), factor: decimal.NewFromInt(10)},
	)

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code:         "INV-001",
		SupplierID:   supplier.ID.String(),
		PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{
				ProductID:     p.ID.String(),
				ProductUnitID: ids[1].String(),
				Amount:        10,
				Price:         decimal.NewFromInt(4000),
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Details, 1)
	assert.Equal(t, int64(10), resp.Details[0].Amount)
	assert.Len(t, purchaseRepo.purchases, 1)

	// one lot opened with the base-unit quantity 10 strips x 10 = 100 tablets
	require.Len(t, stockRepo.order, 1)
	lot := stockRepo.lots[stockRepo.order[0]]
	assert.Equal(t, p.ID, lot.ProductID)
	assert.Equal(t, int64(100), lot.Quantity)
	assert.Equal(t, lot.ID.String(), resp.Details[0].StockID)
}

func TestCreatePurchase_DuplicateCodePerSupplier(t *testing.T) {
	svc, _, _, productRepo, supplierRepo := buildPurchaseSvc()
	supplier := seedSupplier(supplierRepo, "PT Kalbe")
	p, ids := seedProduct(productRepo, "Ibuprofen", 30,
		unitSpec{price: decimal.NewFromInt(700), isDefault: true},
	)

	req := dto.CreatePurchaseRequest{
		Code:         "INV-777",
		SupplierID:   supplier.ID.String(),
		PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), ProductUnitID: ids[0].String(), Amount: 5, Price: decimal.NewFromInt(600)},
		},
	}
	_, err := svc.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreatePurchase_SameCodeDifferentSupplier(t *testing.T) {
	svc, purchaseRepo, _, productRepo, supplierRepo := buildPurchaseSvc()
	s1 := seedSupplier(supplierRepo, "PT Alpha")
	s2 := seedSupplier(supplierRepo, "PT Beta")
	p, ids := seedProduct(productRepo, "Cough Syrup", 30,
		unitSpec{price: decimal.NewFromInt(12000), isDefault: true},
	)

	item := dto.PurchaseItemRequest{
		ProductID: p.ID.String(), ProductUnitID: ids[0].String(), Amount: 3, Price: decimal.NewFromInt(10000),
	}
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-1", SupplierID: s1.ID.String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{item},
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-1", SupplierID: s2.ID.String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{item},
	})
	require.NoError(t, err)
	assert.Len(t, purchaseRepo.purchases, 2)
}

func TestCreatePurchase_UnknownSupplier(t *testing.T) {
	svc, _, _, productRepo, _ := buildPurchaseSvc()
	p, ids := seedProduct(productRepo, "Vitamin D", 30,
		unitSpec{price: decimal.NewFromInt(900), isDefault: true},
	)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-9", SupplierID: uuid.New().String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), ProductUnitID: ids[0].String(), Amount: 1, Price: decimal.NewFromInt(800)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
}

func TestCreatePurchase_UnknownProduct(t *testing.T) {
	svc, purchaseRepo, stockRepo, productRepo, supplierRepo := buildPurchaseSvc()
	supplier := seedSupplier(supplierRepo, "PT Epsilon")
	// a real unit of another product must not change the outcome
	_, ids := seedProduct(productRepo, "Zinc Tablets", 30,
		unitSpec{price: decimal.NewFromInt(600), isDefault: true},
	)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-8", SupplierID: supplier.ID.String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: uuid.New().String(), ProductUnitID: ids[0].String(), Amount: 1, Price: decimal.NewFromInt(500)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "not found")

	assert.Empty(t, purchaseRepo.purchases)
	assert.Empty(t, stockRepo.order)
}

func TestCreatePurchase_UnknownProductUnit(t *testing.T) {
	svc, purchaseRepo, stockRepo, productRepo, supplierRepo := buildPurchaseSvc()
	supplier := seedSupplier(supplierRepo, "PT Gamma")
	p, _ := seedProduct(productRepo, "Eye Drops", 30,
		unitSpec{price: decimal.NewFromInt(15000), isDefault: true},
	)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-5", SupplierID: supplier.ID.String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), ProductUnitID: uuid.New().String(), Amount: 1, Price: decimal.NewFromInt(800)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))

	// nothing was written
	assert.Empty(t, purchaseRepo.purchases)
	assert.Empty(t, stockRepo.order)
}

func TestCreatePurchase_BatchAndExpiryOnLot(t *testing.T) {
	svc, _, stockRepo, productRepo, supplierRepo := buildPurchaseSvc()
	supplier := seedSupplier(supplierRepo, "PT Delta")
	p, ids := seedProduct(productRepo, "Amoxicillin", 30,
		unitSpec{price: decimal.NewFromInt(2000), isDefault: true},
	)

	batch := "B-2409"
	expiry := time.Now().AddDate(1, 0, 0)
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Code: "INV-42", SupplierID: supplier.ID.String(), PurchaseDate: time.Now(),
		Items: []dto.PurchaseItemRequest{
			{
				ProductID:     p.ID.String(),
				ProductUnitID: ids[0].String(),
				Amount:        50,
				BatchNumber:   &batch,
				ExpiredDate:   &expiry,
				Price:         decimal.NewFromInt(1800),
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, stockRepo.order, 1)
	lot := stockRepo.lots[stockRepo.order[0]]
	require.NotNil(t, lot.BatchNumber)
	assert.Equal(t, batch, *lot.BatchNumber)
	require.NotNil(t, lot.ExpiredDate)
	assert.Equal(t, expiry, *lot.ExpiredDate)
}
