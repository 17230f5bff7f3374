package repository

import (
	"context"
	"errors"
	"time"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientLot reports a guarded depletion that found less quantity in
// the lot than requested. The allocator never plans such a take, so hitting
// this means a consistency bug or a lost-update race the guard just caught.
var ErrInsufficientLot = errors.New("insufficient lot quantity")

// StockRepository is the stock ledger: batch lots in base units. Lots are
// created by purchase intake and depleted by sale allocation; mutating calls
// take the enclosing transaction so a failed sale rolls every depletion back.
type StockRepository interface {
	AddLot(ctx context.Context, tx *gorm.DB, lot *model.Stock) error
	// DepleteLot decrements a lot with a quantity guard; ErrInsufficientLot
	// when the lot holds less than amount.
	DepleteLot(ctx context.Context, tx *gorm.DB, lotID uuid.UUID, amount int64) error
	// FindEligibleLots returns lots with quantity > 0 that are not expired and
	// not within bufferDays of expiry, oldest first (created_at, then id).
	// Rows are locked FOR UPDATE when called inside a transaction.
	FindEligibleLots(ctx context.Context, tx *gorm.DB, productID uuid.UUID, asOf time.Time, bufferDays int) ([]model.Stock, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	Search(ctx context.Context, filter dto.StockFilter) ([]model.Stock, int64, error)
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) DB() *gorm.DB { return r.db }

func (r *stockRepo) AddLot(ctx context.Context, tx *gorm.DB, lot *model.Stock) error {
	return tx.WithContext(ctx).Create(lot).Error
}

func (r *stockRepo) DepleteLot(ctx context.Context, tx *gorm.DB, lotID uuid.UUID, amount int64) error {
	res := tx.WithContext(ctx).Model(&model.Stock{}).
		Where("id = ? AND quantity >= ?", lotID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientLot
	}
	return nil
}

func (r *stockRepo) FindEligibleLots(ctx context.Context, tx *gorm.DB, productID uuid.UUID, asOf time.Time, bufferDays int) ([]model.Stock, error) {
	threshold := asOf.AddDate(0, 0, bufferDays)
	var lots []model.Stock
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND quantity > 0", productID).
		Where("expired_date IS NULL OR expired_date > ?", threshold).
		Order("created_at ASC, id ASC").
		Find(&lots).Error
	return lots, err
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var lot model.Stock
	err := r.db.WithContext(ctx).Preload("Product").First(&lot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *stockRepo) Search(ctx context.Context, filter dto.StockFilter) ([]model.Stock, int64, error) {
	var stocks []model.Stock
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Stock{}).
		Joins("JOIN products ON products.id = stocks.product_id")
	q = ApplyScopes(q,
		Contains("products.name", filter.Product),
		Contains("stocks.batch_number", filter.BatchNumber),
		DaysBeforeDeadline("stocks.expired_date", filter.BeforeExpired, time.Now()),
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := ApplyScopes(q, Paginate(filter.Page, filter.Size)).
		Preload("Product").
		Order("stocks.created_at ASC").
		Find(&stocks).Error
	return stocks, total, err
}
