package repository

import (
	"context"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository covers products, their units, and the unit conversion
// chain. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Product) error
	CreateConversion(ctx context.Context, tx *gorm.DB, c *model.UnitConversion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)

	FindUnitByID(ctx context.Context, id uuid.UUID) (*model.ProductUnit, error)
	// FindConversionFrom returns the outgoing conversion edge of a product
	// unit, or gorm.ErrRecordNotFound when the unit has none.
	FindConversionFrom(ctx context.Context, productUnitID uuid.UUID) (*model.UnitConversion, error)

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Product) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateConversion(ctx context.Context, tx *gorm.DB, c *model.UnitConversion) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("ProductUnits.Unit").
		Preload("ProductUnits.FromConversions").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("ProductUnits.Unit").
		First(&p, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	q = ApplyScopes(q,
		Contains("name", filter.Name),
		Contains("code", filter.Code),
		Equals("category_id", filter.CategoryID),
		Equals("group_id", filter.GroupID),
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := ApplyScopes(q, Paginate(filter.Page, filter.Size)).
		Preload("Category").
		Preload("Group").
		Order("name ASC").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindUnitByID(ctx context.Context, id uuid.UUID) (*model.ProductUnit, error) {
	var pu model.ProductUnit
	err := r.db.WithContext(ctx).Preload("Unit").First(&pu, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pu, nil
}

func (r *productRepo) FindConversionFrom(ctx context.Context, productUnitID uuid.UUID) (*model.UnitConversion, error) {
	var conv model.UnitConversion
	err := r.db.WithContext(ctx).
		First(&conv, "from_product_unit_id = ?", productUnitID).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
