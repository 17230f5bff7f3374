package service

import (
	"context"
	"strings"
	"time"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Product stub ──────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products    map[uuid.UUID]*model.Product
	units       map[uuid.UUID]*model.ProductUnit
	conversions map[uuid.UUID]*model.UnitConversion // keyed by FromProductUnitID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:    make(map[uuid.UUID]*model.Product),
		units:       make(map[uuid.UUID]*model.ProductUnit),
		conversions: make(map[uuid.UUID]*model.UnitConversion),
	}
}

func (r *stubProductRepo) Create(_ context.Context, _ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	for i := range p.ProductUnits {
		pu := &p.ProductUnits[i]
		if pu.ID == uuid.Nil {
			pu.ID = uuid.New()
		}
		r.units[pu.ID] = pu
	}
	return nil
}

func (r *stubProductRepo) CreateConversion(_ context.Context, _ *gorm.DB, c *model.UnitConversion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.conversions[c.FromProductUnitID] = c
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) FindUnitByID(_ context.Context, id uuid.UUID) (*model.ProductUnit, error) {
	pu, ok := r.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pu, nil
}

func (r *stubProductRepo) FindConversionFrom(_ context.Context, productUnitID uuid.UUID) (*model.UnitConversion, error) {
	c, ok := r.conversions[productUnitID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// unitSpec declares one unit of a seeded product, smallest (base) first.
// factor is the conversion value into the previous unit; ignored for the base.
type unitSpec struct {
	price     decimal.Decimal
	factor    decimal.Decimal
	isDefault bool
}

// seedProduct registers a product with its unit chain and returns the product
// unit IDs in the order given.
func seedProduct(repo *stubProductRepo, name string, buffer int, specs ...unitSpec) (*model.Product, []uuid.UUID) {
	p := &model.Product{
		ID:                     uuid.New(),
		Name:                   name,
		Code:                   strings.ToUpper(strings.ReplaceAll(name, " ", "-")),
		AllowSaleBeforeExpired: buffer,
		CategoryID:             uuid.New(),
		GroupID:                uuid.New(),
	}
	ids := make([]uuid.UUID, len(specs))
	for i, spec := range specs {
		pu := model.ProductUnit{
			ID:        uuid.New(),
			ProductID: p.ID,
			UnitID:    uuid.New(),
			Price:     spec.price,
			IsDefault: spec.isDefault,
			IsBase:    i == 0,
		}
		ids[i] = pu.ID
		p.ProductUnits = append(p.ProductUnits, pu)
	}
	_ = repo.Create(context.Background(), nil, p)
	for i := 1; i < len(specs); i++ {
		_ = repo.CreateConversion(context.Background(), nil, &model.UnitConversion{
			FromProductUnitID: ids[i],
			ToProductUnitID:   ids[i-1],
			ConversionValue:   specs[i].factor,
		})
	}
	return p, ids
}

// ── Stock stub ────────────────────────────────────────────────────────────────

// stubStockRepo keeps lots in insertion order, mirroring the created_at
// ordering of the real ledger.
type stubStockRepo struct {
	lots  map[uuid.UUID]*model.Stock
	order []uuid.UUID
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{lots: make(map[uuid.UUID]*model.Stock)}
}

func (r *stubStockRepo) AddLot(_ context.Context, _ *gorm.DB, lot *model.Stock) error {
	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}
	r.lots[lot.ID] = lot
	r.order = append(r.order, lot.ID)
	return nil
}

func (r *stubStockRepo) DepleteLot(_ context.Context, _ *gorm.DB, lotID uuid.UUID, amount int64) error {
	lot, ok := r.lots[lotID]
	if !ok || lot.Quantity < amount {
		return repository.ErrInsufficientLot
	}
	lot.Quantity -= amount
	return nil
}

func (r *stubStockRepo) FindEligibleLots(_ context.Context, _ *gorm.DB, productID uuid.UUID, asOf time.Time, bufferDays int) ([]model.Stock, error) {
	threshold := asOf.AddDate(0, 0, bufferDays)
	var out []model.Stock
	for _, id := range r.order {
		lot := r.lots[id]
		if lot.ProductID != productID || lot.Quantity <= 0 {
			continue
		}
		if lot.ExpiredDate != nil && !lot.ExpiredDate.After(threshold) {
			continue
		}
		out = append(out, *lot)
	}
	return out, nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Stock, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lot, nil
}

func (r *stubStockRepo) Search(_ context.Context, _ dto.StockFilter) ([]model.Stock, int64, error) {
	var out []model.Stock
	for _, id := range r.order {
		out = append(out, *r.lots[id])
	}
	return out, int64(len(out)), nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

// seedLot adds a lot with the given base-unit quantity.
func seedLot(repo *stubStockRepo, productID uuid.UUID, quantity int64, expiredDate *time.Time) *model.Stock {
	lot := &model.Stock{
		ID:          uuid.New(),
		ProductID:   productID,
		Quantity:    quantity,
		ExpiredDate: expiredDate,
	}
	_ = repo.AddLot(context.Background(), nil, lot)
	return lot
}

// ── Sale stub ─────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	codes map[string]bool
	// failCreates makes the next N Create calls fail with a duplicate key
	// error, simulating a sale code race.
	failCreates int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		sales: make(map[uuid.UUID]*model.Sale),
		codes: make(map[string]bool),
	}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if r.failCreates > 0 {
		r.failCreates--
		return gorm.ErrDuplicatedKey
	}
	if r.codes[s.Code] {
		return gorm.ErrDuplicatedKey
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	r.codes[s.Code] = true
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) LastCodeWithPrefix(_ context.Context, _ *gorm.DB, prefix string) (string, error) {
	last := ""
	for _, s := range r.sales {
		if strings.HasPrefix(s.Code, prefix) && s.Code > last {
			last = s.Code
		}
	}
	if last == "" {
		return "", gorm.ErrRecordNotFound
	}
	return last, nil
}

func (r *stubSaleRepo) Search(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Purchase stub ─────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, _ *gorm.DB, p *model.Purchase) error {
	for _, existing := range r.purchases {
		if existing.Code == p.Code && existing.SupplierID == p.SupplierID {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPurchaseRepo) FindByCodeAndSupplier(_ context.Context, code string, supplierID uuid.UUID) (*model.Purchase, error) {
	for _, p := range r.purchases {
		if p.Code == code && p.SupplierID == supplierID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPurchaseRepo) Search(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── Supplier stub ─────────────────────────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *stubSupplierRepo) Search(_ context.Context, _ dto.SupplierFilter) ([]model.Supplier, int64, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── Named master stub ─────────────────────────────────────────────────────────

type stubNamedRepo[T repository.NamedModel] struct {
	items  map[uuid.UUID]*T
	nameOf func(*T) string
	setID  func(*T, uuid.UUID)
}

func newStubCategoryRepo() *stubNamedRepo[model.Category] {
	return &stubNamedRepo[model.Category]{
		items:  make(map[uuid.UUID]*model.Category),
		nameOf: func(c *model.Category) string { return c.Name },
		setID:  func(c *model.Category, id uuid.UUID) { c.ID = id },
	}
}

func newStubGroupRepo() *stubNamedRepo[model.Group] {
	return &stubNamedRepo[model.Group]{
		items:  make(map[uuid.UUID]*model.Group),
		nameOf: func(g *model.Group) string { return g.Name },
		setID:  func(g *model.Group, id uuid.UUID) { g.ID = id },
	}
}

func newStubUnitRepo() *stubNamedRepo[model.Unit] {
	return &stubNamedRepo[model.Unit]{
		items:  make(map[uuid.UUID]*model.Unit),
		nameOf: func(u *model.Unit) string { return u.Name },
		setID:  func(u *model.Unit, id uuid.UUID) { u.ID = id },
	}
}

func (r *stubNamedRepo[T]) Create(_ context.Context, m *T) error {
	id := uuid.New()
	r.setID(m, id)
	r.items[id] = m
	return nil
}

func (r *stubNamedRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubNamedRepo[T]) CountByName(_ context.Context, name string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if r.nameOf(m) == name {
			n++
		}
	}
	return n, nil
}

func (r *stubNamedRepo[T]) Update(_ context.Context, _ *T) error { return nil }

func (r *stubNamedRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubNamedRepo[T]) Search(_ context.Context, _ dto.NamedFilter) ([]T, int64, error) {
	var out []T
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

var _ repository.NamedRepository[model.Category] = (*stubNamedRepo[model.Category])(nil)
