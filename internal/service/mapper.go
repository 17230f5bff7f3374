package service

import (
	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
)

// parseUUID turns a validated request field into a uuid, mapping a bad value
// to a client error instead of a 500.
func parseUUID(value, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apierror.Validation("invalid %s", label)
	}
	return id, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func toSupplierResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
		Email:   s.Email,
	}
}

func toProductUnitResponse(pu *model.ProductUnit) dto.ProductUnitResponse {
	resp := dto.ProductUnitResponse{
		ID:        pu.ID.String(),
		UnitID:    pu.UnitID.String(),
		Price:     pu.Price,
		IsDefault: pu.IsDefault,
		IsBase:    pu.IsBase,
	}
	if pu.Unit != nil {
		resp.Unit = &dto.NamedResponse{ID: pu.Unit.ID.String(), Name: pu.Unit.Name}
	}
	for _, conv := range pu.FromConversions {
		resp.UnitConversions = append(resp.UnitConversions, dto.UnitConversionResponse{
			ID:                conv.ID.String(),
			FromProductUnitID: conv.FromProductUnitID.String(),
			ToProductUnitID:   conv.ToProductUnitID.String(),
			ConversionValue:   conv.ConversionValue,
		})
	}
	return resp
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		Code:                   p.Code,
		MinimumStock:           p.MinimumStock,
		AllowSaleBeforeExpired: p.AllowSaleBeforeExpired,
		Description:            p.Description,
		Indication:             p.Indication,
		Contraindication:       p.Contraindication,
		SideEffects:            p.SideEffects,
		Content:                p.Content,
		Dose:                   p.Dose,
		CategoryID:             p.CategoryID.String(),
		GroupID:                p.GroupID.String(),
	}
	for i := range p.ProductUnits {
		resp.ProductUnits = append(resp.ProductUnits, toProductUnitResponse(&p.ProductUnits[i]))
	}
	return resp
}

func toStockResponse(s *model.Stock) dto.StockResponse {
	resp := dto.StockResponse{
		ID:          s.ID.String(),
		ProductID:   s.ProductID.String(),
		BatchNumber: s.BatchNumber,
		ExpiredDate: s.ExpiredDate,
		Quantity:    s.Quantity,
		CreatedAt:   s.CreatedAt,
	}
	if s.Product != nil {
		product := toProductResponse(s.Product)
		resp.Product = &product
	}
	return resp
}

func toPurchaseResponse(p *model.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		SupplierID:   p.SupplierID.String(),
		UserID:       p.UserID.String(),
		PurchaseDate: p.PurchaseDate,
		Note:         p.Note,
		CreatedAt:    p.CreatedAt,
	}
	if p.Supplier != nil {
		supplier := toSupplierResponse(p.Supplier)
		resp.Supplier = &supplier
	}
	if p.User != nil {
		user := toUserResponse(p.User)
		resp.User = &user
	}
	for i := range p.Details {
		d := &p.Details[i]
		detail := dto.PurchaseDetailResponse{
			ID:            d.ID.String(),
			PurchaseID:    d.PurchaseID.String(),
			StockID:       d.StockID.String(),
			ProductUnitID: d.ProductUnitID.String(),
			Amount:        d.Amount,
			Price:         d.Price,
		}
		if d.Stock != nil {
			stock := toStockResponse(d.Stock)
			detail.Stock = &stock
		}
		if d.ProductUnit != nil {
			pu := toProductUnitResponse(d.ProductUnit)
			detail.ProductUnit = &pu
		}
		resp.Details = append(resp.Details, detail)
	}
	return resp
}

func toPurchaseListItem(p *model.Purchase) dto.PurchaseListItem {
	item := dto.PurchaseListItem{
		ID:           p.ID.String(),
		Code:         p.Code,
		SupplierID:   p.SupplierID.String(),
		UserID:       p.UserID.String(),
		PurchaseDate: p.PurchaseDate,
	}
	if p.Supplier != nil {
		supplier := toSupplierResponse(p.Supplier)
		item.Supplier = &supplier
	}
	if p.User != nil {
		user := toUserResponse(p.User)
		item.User = &user
	}
	return item
}

func toSaleResponse(s *model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:           s.ID.String(),
		Code:         s.Code,
		UserID:       s.UserID.String(),
		TotalPayment: s.TotalPayment,
		Change:       s.Change,
		CreatedAt:    s.CreatedAt,
	}
	if s.User != nil {
		user := toUserResponse(s.User)
		resp.User = &user
	}
	for i := range s.Details {
		d := &s.Details[i]
		detail := dto.SaleDetailResponse{
			ID:            d.ID.String(),
			SaleID:        d.SaleID.String(),
			ProductID:     d.ProductID.String(),
			ProductUnitID: d.ProductUnitID.String(),
			Quantity:      d.Quantity,
			Price:         d.Price,
		}
		if d.Product != nil {
			product := toProductResponse(d.Product)
			detail.Product = &product
		}
		if d.ProductUnit != nil {
			pu := toProductUnitResponse(d.ProductUnit)
			detail.ProductUnit = &pu
		}
		for j := range d.SaleStocks {
			ss := &d.SaleStocks[j]
			entry := dto.SaleStockResponse{
				StockID:  ss.StockID.String(),
				Quantity: ss.Quantity,
			}
			if ss.Stock != nil {
				stock := toStockResponse(ss.Stock)
				entry.Stock = &stock
			}
			detail.SaleStocks = append(detail.SaleStocks, entry)
		}
		resp.Details = append(resp.Details, detail)
	}
	return resp
}
