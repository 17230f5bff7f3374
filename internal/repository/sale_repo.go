package repository

import (
	"context"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create persists the sale with nested details and lot allocations in the
	// caller's transaction; gorm.ErrDuplicatedKey signals a sale code race.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// LastCodeWithPrefix returns the highest sale code starting with prefix,
	// or gorm.ErrRecordNotFound when no sale matches.
	LastCodeWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error)
	Search(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Details.SaleStocks.Stock").
		Preload("Details.Product").
		Preload("Details.ProductUnit.Unit").
		Preload("User").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) LastCodeWithPrefix(ctx context.Context, tx *gorm.DB, prefix string) (string, error) {
	var sale model.Sale
	err := tx.WithContext(ctx).
		Where("code LIKE ?", prefix+"%").
		Order("code DESC").
		First(&sale).Error
	if err != nil {
		return "", err
	}
	return sale.Code, nil
}

func (r *saleRepo) Search(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	q = ApplyScopes(q,
		Equals("user_id", filter.UserID),
		MonthRange("created_at", filter.Month),
		DateRange("created_at", filter.StartDate, filter.EndDate),
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := ApplyScopes(q, Paginate(filter.Page, filter.Size)).
		Preload("Details.SaleStocks.Stock").
		Preload("Details.Product").
		Preload("Details.ProductUnit.Unit").
		Preload("User").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, total, err
}
