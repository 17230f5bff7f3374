package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// priceCacheTTL keeps the public price lookup cheap without serving stale
// prices for long after an update.
const priceCacheTTL = 60 * time.Second

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter dto.ProductFilter) (*dto.Pageable[dto.ProductResponse], error)
	CheckPrice(ctx context.Context, code string) (*dto.PriceCheckResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.NamedRepository[model.Category]
	groups     repository.NamedRepository[model.Group]
	units      repository.NamedRepository[model.Unit]
	cache      *redis.Client
	log        zerolog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.NamedRepository[model.Category],
	groups repository.NamedRepository[model.Group],
	units repository.NamedRepository[model.Unit],
	cache *redis.Client,
	log zerolog.Logger,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		groups:     groups,
		units:      units,
		cache:      cache,
		log:        log,
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := parseUUID(req.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	groupID, err := parseUUID(req.GroupID, "group_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, err
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("group not found")
		}
		return nil, err
	}
	if _, err := s.products.FindByCode(ctx, req.Code); err == nil {
		return nil, apierror.Conflict("product code %s already exists", req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.validateUnits(ctx, req.ProductUnits); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:                     uuid.New(),
		Name:                   req.Name,
		Code:                   req.Code,
		MinimumStock:           req.MinimumStock,
		AllowSaleBeforeExpired: req.AllowSaleBeforeExpired,
		Description:            req.Description,
		Indication:             req.Indication,
		Contraindication:       req.Contraindication,
		SideEffects:            req.SideEffects,
		Content:                req.Content,
		Dose:                   req.Dose,
		CategoryID:             categoryID,
		GroupID:                groupID,
	}
	for i, unitReq := range req.ProductUnits {
		unitID, err := parseUUID(unitReq.UnitID, "unit_id")
		if err != nil {
			return nil, err
		}
		product.ProductUnits = append(product.ProductUnits, model.ProductUnit{
			ID:        uuid.New(),
			ProductID: product.ID,
			UnitID:    unitID,
			Price:     unitReq.Price,
			IsDefault: unitReq.IsDefault,
			IsBase:    i == 0,
		})
	}

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.Create(ctx, tx, product); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierror.Conflict("product code %s already exists", req.Code)
			}
			return err
		}
		// Conversions form a chain: each unit converts into the one listed
		// before it, terminating at the base unit.
		for i := 1; i < len(req.ProductUnits); i++ {
			conv := &model.UnitConversion{
				FromProductUnitID: product.ProductUnits[i].ID,
				ToProductUnitID:   product.ProductUnits[i-1].ID,
				ConversionValue:   *req.ProductUnits[i].ConversionValue,
			}
			if err := s.products.CreateConversion(ctx, tx, conv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, findErr := s.products.FindByID(ctx, product.ID)
	if findErr == nil {
		product = full
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// validateUnits enforces the unit-list invariants: known unit ids, no
// duplicates, exactly one default, and a positive conversion value on every
// unit after the first.
func (s *productService) validateUnits(ctx context.Context, units []dto.CreateProductUnitRequest) error {
	defaults := 0
	seen := make(map[uuid.UUID]bool, len(units))
	for i, unitReq := range units {
		unitID, err := parseUUID(unitReq.UnitID, "unit_id")
		if err != nil {
			return err
		}
		if seen[unitID] {
			return apierror.Validation("duplicate unit %s in product units", unitReq.UnitID)
		}
		seen[unitID] = true
		if _, err := s.units.FindByID(ctx, unitID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("unit %s not found", unitReq.UnitID)
			}
			return err
		}
		if unitReq.IsDefault {
			defaults++
		}
		if i > 0 {
			if unitReq.ConversionValue == nil || !unitReq.ConversionValue.IsPositive() {
				return apierror.Validation("conversion_value is required and must be positive for unit %s", unitReq.UnitID)
			}
		}
	}
	if defaults != 1 {
		return apierror.Validation("exactly one product unit must be the default")
	}
	return nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	if req.Code != product.Code {
		if _, err := s.products.FindByCode(ctx, req.Code); err == nil {
			return nil, apierror.Conflict("product code %s already exists", req.Code)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	categoryID, err := parseUUID(req.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	groupID, err := parseUUID(req.GroupID, "group_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("category not found")
		}
		return nil, err
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("group not found")
		}
		return nil, err
	}

	product.Name = req.Name
	product.Code = req.Code
	product.MinimumStock = req.MinimumStock
	product.AllowSaleBeforeExpired = req.AllowSaleBeforeExpired
	product.Description = req.Description
	product.Indication = req.Indication
	product.Contraindication = req.Contraindication
	product.SideEffects = req.SideEffects
	product.Content = req.Content
	product.Dose = req.Dose
	product.CategoryID = categoryID
	product.GroupID = groupID

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, product.Code)
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("product not found")
	}
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePrice(ctx, product.Code)
	return nil
}

func (s *productService) Search(ctx context.Context, filter dto.ProductFilter) (*dto.Pageable[dto.ProductResponse], error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, toProductResponse(&products[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}

// CheckPrice is the public price lookup: the product's default-unit price by
// product code, cached in redis for priceCacheTTL.
func (s *productService) CheckPrice(ctx context.Context, code string) (*dto.PriceCheckResponse, error) {
	key := "price:" + code
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached dto.PriceCheckResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	product, err := s.products.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.PriceCheckResponse{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Code:      product.Code,
	}
	for i := range product.ProductUnits {
		pu := &product.ProductUnits[i]
		if pu.IsDefault {
			resp.Price = pu.Price
			if pu.Unit != nil {
				resp.Unit = pu.Unit.Name
			}
			break
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw, priceCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("code", code).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *productService) invalidatePrice(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, "price:"+code).Err(); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("price cache invalidation failed")
	}
}
