package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// saleCodeAttempts bounds the retry loop for the daily sale code sequence.
// Two concurrent checkouts can read the same max code; the unique index
// rejects the loser and the whole transaction is retried with a fresh code.
const saleCodeAttempts = 3

type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	Search(ctx context.Context, filter dto.SaleFilter) (*dto.Pageable[dto.SaleResponse], error)
}

type saleService struct {
	sales      repository.SaleRepository
	stocks     repository.StockRepository
	products   repository.ProductRepository
	codePrefix string
	log        zerolog.Logger
	now        func() time.Time
}

func NewSaleService(
	sales repository.SaleRepository,
	stocks repository.StockRepository,
	products repository.ProductRepository,
	codePrefix string,
	log zerolog.Logger,
) SaleService {
	return &saleService{
		sales:      sales,
		stocks:     stocks,
		products:   products,
		codePrefix: codePrefix,
		log:        log,
		now:        time.Now,
	}
}

// saleLine is one planned sale item after conversion and allocation.
type saleLine struct {
	productID     uuid.UUID
	productUnitID uuid.UUID
	quantity      int64
	price         decimal.Decimal
	totalBase     int64
	takes         []lotTake
}

func (s *saleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	var created *model.Sale
	var err error
	for attempt := 0; attempt < saleCodeAttempts; attempt++ {
		created, err = s.createOnce(ctx, userID, req)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Warn().Int("attempt", attempt+1).Msg("sale code collision, retrying")
			continue
		}
		break
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.Internal("sale code sequence exhausted retries")
	}
	if err != nil {
		return nil, err
	}

	full, findErr := s.sales.FindByID(ctx, created.ID)
	if findErr == nil {
		created = full
	}
	resp := toSaleResponse(created)
	return &resp, nil
}

// createOnce runs one attempt of the sale transaction. It plans every line
// first (reads only), then applies depletions and inserts, so any failure
// leaves the ledger untouched.
func (s *saleService) createOnce(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*model.Sale, error) {
	var sale *model.Sale
	err := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		now := s.now()

		lines, total, err := s.planLines(ctx, tx, req.Items, now)
		if err != nil {
			return err
		}

		if req.TotalPayment.LessThan(total) {
			return apierror.InsufficientPayment("payment %s is less than total %s", req.TotalPayment, total)
		}
		change := req.TotalPayment.Sub(total)

		code, err := s.nextCode(ctx, tx, now)
		if err != nil {
			return err
		}

		for _, line := range lines {
			for _, take := range line.takes {
				if err := s.stocks.DepleteLot(ctx, tx, take.LotID, take.Amount); err != nil {
					if errors.Is(err, repository.ErrInsufficientLot) {
						s.log.Error().
							Str("lot_id", take.LotID.String()).
							Int64("amount", take.Amount).
							Msg("planned depletion exceeded lot quantity")
						return apierror.Internal("stock ledger inconsistency on lot %s", take.LotID)
					}
					return err
				}
			}
		}

		sale = &model.Sale{
			Code:         code,
			UserID:       userID,
			TotalPayment: req.TotalPayment,
			Change:       change,
		}
		for _, line := range lines {
			detail := model.SaleDetail{
				ProductID:     line.productID,
				ProductUnitID: line.productUnitID,
				Quantity:      line.quantity,
				Price:         line.price,
			}
			for _, take := range line.takes {
				detail.SaleStocks = append(detail.SaleStocks, model.SaleStock{
					StockID:  take.LotID,
					Quantity: backConvert(take.Amount, line.quantity, line.totalBase),
				})
			}
			sale.Details = append(sale.Details, detail)
		}
		return s.sales.Create(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// planLines resolves every item to base units and FEFO-plans its lot draws
// without mutating anything. Lot views are shared per product so repeated
// items of the same product see what earlier items already claimed.
func (s *saleService) planLines(ctx context.Context, tx *gorm.DB, items []dto.SaleItemRequest, now time.Time) ([]saleLine, decimal.Decimal, error) {
	total := decimal.Zero
	lines := make([]saleLine, 0, len(items))
	lotsByProduct := make(map[uuid.UUID][]*lotView)

	for _, item := range items {
		productID, err := parseUUID(item.ProductID, "product_id")
		if err != nil {
			return nil, decimal.Zero, err
		}
		productUnitID, err := parseUUID(item.ProductUnitID, "product_unit_id")
		if err != nil {
			return nil, decimal.Zero, err
		}

		product, err := s.products.FindByID(ctx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, apierror.NotFound("product %s not found", item.ProductID)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		pu, err := s.products.FindUnitByID(ctx, productUnitID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, apierror.NotFound("product unit %s not found", item.ProductUnitID)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		if pu.ProductID != productID {
			return nil, decimal.Zero, apierror.Validation("product unit does not belong to product %s", product.Name)
		}

		factor, err := resolveBaseFactor(ctx, s.products, pu)
		if err != nil {
			return nil, decimal.Zero, err
		}
		totalBase := toBaseQuantity(item.Quantity, factor)
		if totalBase <= 0 {
			return nil, decimal.Zero, apierror.Validation("quantity of %s converts to zero base units", product.Name)
		}

		views, ok := lotsByProduct[productID]
		if !ok {
			lots, err := s.stocks.FindEligibleLots(ctx, tx, productID, now, product.AllowSaleBeforeExpired)
			if err != nil {
				return nil, decimal.Zero, err
			}
			views = make([]*lotView, len(lots))
			for i := range lots {
				views[i] = &lotView{ID: lots[i].ID, Available: lots[i].Quantity}
			}
			lotsByProduct[productID] = views
		}

		takes, remaining := allocateFEFO(views, totalBase)
		if remaining > 0 {
			return nil, decimal.Zero, apierror.InsufficientStock("insufficient stock for product %s", product.Name)
		}

		total = total.Add(pu.Price.Mul(decimal.NewFromInt(item.Quantity)))
		lines = append(lines, saleLine{
			productID:     productID,
			productUnitID: productUnitID,
			quantity:      item.Quantity,
			price:         pu.Price,
			totalBase:     totalBase,
			takes:         takes,
		})
	}
	return lines, total, nil
}

// nextCode builds the daily receipt code: PREFIX-YYMMDD followed by a
// four-digit sequence starting at 0001.
func (s *saleService) nextCode(ctx context.Context, tx *gorm.DB, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s", s.codePrefix, now.Format("060102"))
	last, err := s.sales.LastCodeWithPrefix(ctx, tx, prefix)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	seq := 1
	if last != "" && len(last) > len(prefix) {
		if n, convErr := strconv.Atoi(last[len(prefix):]); convErr == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// backConvert expresses a base-unit take in the sale line's requested unit
// for the audit trail: takenBase * requestedQty / totalBase, half-up at 4 dp.
func backConvert(takenBase, requestedQty, totalBase int64) decimal.Decimal {
	return decimal.NewFromInt(takenBase).
		Mul(decimal.NewFromInt(requestedQty)).
		Div(decimal.NewFromInt(totalBase)).
		Round(4)
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("sale not found")
	}
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

func (s *saleService) Search(ctx context.Context, filter dto.SaleFilter) (*dto.Pageable[dto.SaleResponse], error) {
	sales, total, err := s.sales.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, toSaleResponse(&sales[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}
