package service

import (
	"context"
	"errors"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PurchaseService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	Search(ctx context.Context, filter dto.PurchaseFilter) (*dto.Pageable[dto.PurchaseListItem], error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	stocks    repository.StockRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	log       zerolog.Logger
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	stocks repository.StockRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	log zerolog.Logger,
) PurchaseService {
	return &purchaseService{
		purchases: purchases,
		stocks:    stocks,
		products:  products,
		suppliers: suppliers,
		log:       log,
	}
}

// purchaseLine is one validated invoice line with its base-unit quantity.
type purchaseLine struct {
	item    dto.PurchaseItemRequest
	unitID  uuid.UUID
	product uuid.UUID
	baseQty int64
}

func (s *purchaseService) Create(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := parseUUID(req.SupplierID, "supplier_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supplier not found")
		}
		return nil, err
	}

	if _, err := s.purchases.FindByCodeAndSupplier(ctx, req.Code, supplierID); err == nil {
		return nil, apierror.Conflict("purchase code %s already exists for this supplier", req.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lines, err := s.validateLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	err = runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		purchase = &model.Purchase{
			Code:         req.Code,
			SupplierID:   supplierID,
			UserID:       userID,
			PurchaseDate: req.PurchaseDate,
			Note:         req.Note,
		}
		for _, line := range lines {
			lot := &model.Stock{
				ID:          uuid.New(),
				ProductID:   line.product,
				BatchNumber: line.item.BatchNumber,
				ExpiredDate: line.item.ExpiredDate,
				Quantity:    line.baseQty,
			}
			if err := s.stocks.AddLot(ctx, tx, lot); err != nil {
				return err
			}
			purchase.Details = append(purchase.Details, model.PurchaseDetail{
				ProductUnitID: line.unitID,
				StockID:       lot.ID,
				Amount:        line.item.Amount,
				Price:         line.item.Price,
			})
		}
		if err := s.purchases.Create(ctx, tx, purchase); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierror.Conflict("purchase code %s already exists for this supplier", req.Code)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Str("code", purchase.Code).
		Int("lines", len(purchase.Details)).
		Msg("purchase booked")

	full, findErr := s.purchases.FindByID(ctx, purchase.ID)
	if findErr == nil {
		purchase = full
	}
	resp := toPurchaseResponse(purchase)
	return &resp, nil
}

// validateLines checks product and unit references and resolves every line
// amount into base units before anything is written. Products are checked in
// one batch before any unit lookup, so an unknown product is always a 404
// regardless of which unit the line names.
func (s *purchaseService) validateLines(ctx context.Context, items []dto.PurchaseItemRequest) ([]purchaseLine, error) {
	lines := make([]purchaseLine, 0, len(items))
	productIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		productID, err := parseUUID(item.ProductID, "product_id")
		if err != nil {
			return nil, err
		}
		unitID, err := parseUUID(item.ProductUnitID, "product_unit_id")
		if err != nil {
			return nil, err
		}
		if !seen[productID] {
			seen[productID] = true
			productIDs = append(productIDs, productID)
		}
		lines = append(lines, purchaseLine{
			item:    item,
			unitID:  unitID,
			product: productID,
		})
	}

	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		known[products[i].ID] = true
	}
	for i := range lines {
		if !known[lines[i].product] {
			return nil, apierror.NotFound("product %s not found", lines[i].item.ProductID)
		}
	}

	for i := range lines {
		line := &lines[i]
		pu, err := s.products.FindUnitByID(ctx, line.unitID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("product unit %s not found", line.item.ProductUnitID)
		}
		if err != nil {
			return nil, err
		}
		if pu.ProductID != line.product {
			return nil, apierror.Validation("product unit %s does not belong to product %s", line.item.ProductUnitID, line.item.ProductID)
		}

		factor, err := resolveBaseFactor(ctx, s.products, pu)
		if err != nil {
			return nil, err
		}
		line.baseQty = toBaseQuantity(line.item.Amount, factor)
		if line.baseQty <= 0 {
			return nil, apierror.Validation("amount of product unit %s converts to zero base units", line.item.ProductUnitID)
		}
	}
	return lines, nil
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("purchase not found")
	}
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) Search(ctx context.Context, filter dto.PurchaseFilter) (*dto.Pageable[dto.PurchaseListItem], error) {
	purchases, total, err := s.purchases.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PurchaseListItem, 0, len(purchases))
	for i := range purchases {
		data = append(data, toPurchaseListItem(&purchases[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}
