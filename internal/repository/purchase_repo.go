package repository

import (
	"context"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// Create persists the purchase with its detail lines; the details must
	// already reference the stock lots created in the same transaction.
	Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	FindByCodeAndSupplier(ctx context.Context, code string, supplierID uuid.UUID) (*model.Purchase, error)
	Search(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Details.Stock").
		Preload("Details.ProductUnit.Unit").
		Preload("Supplier").
		Preload("User").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) FindByCodeAndSupplier(ctx context.Context, code string, supplierID uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		First(&p, "code = ? AND supplier_id = ?", code, supplierID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) Search(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	q = ApplyScopes(q,
		Contains("code", filter.Code),
		Equals("supplier_id", filter.SupplierID),
		Equals("user_id", filter.UserID),
		MonthRange("purchase_date", filter.Month),
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := ApplyScopes(q, Paginate(filter.Page, filter.Size)).
		Preload("Supplier").
		Preload("User").
		Order("purchase_date DESC").
		Find(&purchases).Error
	return purchases, total, err
}
