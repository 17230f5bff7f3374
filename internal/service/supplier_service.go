package service

import (
	"context"
	"errors"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter dto.SupplierFilter) (*dto.Pageable[dto.SupplierResponse], error)
}

type supplierService struct {
	suppliers repository.SupplierRepository
}

func NewSupplierService(suppliers repository.SupplierRepository) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if _, err := s.suppliers.FindByName(ctx, req.Name); err == nil {
		return nil, apierror.Conflict("supplier %s already exists", req.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("supplier %s already exists", req.Name)
		}
		return nil, err
	}
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("supplier not found")
	}
	if err != nil {
		return nil, err
	}
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("supplier not found")
	}
	if err != nil {
		return nil, err
	}
	if req.Name != supplier.Name {
		if _, err := s.suppliers.FindByName(ctx, req.Name); err == nil {
			return nil, apierror.Conflict("supplier %s already exists", req.Name)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	supplier.Name = req.Name
	supplier.Address = req.Address
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("supplier not found")
		}
		return err
	}
	return s.suppliers.Delete(ctx, id)
}

func (s *supplierService) Search(ctx context.Context, filter dto.SupplierFilter) (*dto.Pageable[dto.SupplierResponse], error) {
	suppliers, total, err := s.suppliers.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		data = append(data, toSupplierResponse(&suppliers[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}
