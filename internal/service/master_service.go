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

// NamedService is the shared CRUD service for the name-only master entities.
// The closures bridge the generic code to the concrete model fields.
type NamedService[T repository.NamedModel] struct {
	repo      repository.NamedRepository[T]
	label     string
	newItem   func(name string) *T
	rename    func(item *T, name string)
	view      func(item *T) dto.NamedResponse
	protected func(item *T) bool
}

func NewCategoryService(repo repository.NamedRepository[model.Category]) *NamedService[model.Category] {
	return &NamedService[model.Category]{
		repo:    repo,
		label:   "category",
		newItem: func(name string) *model.Category { return &model.Category{Name: name} },
		rename:  func(c *model.Category, name string) { c.Name = name },
		view: func(c *model.Category) dto.NamedResponse {
			return dto.NamedResponse{ID: c.ID.String(), Name: c.Name}
		},
		protected: func(c *model.Category) bool { return c.IsDefault },
	}
}

func NewGroupService(repo repository.NamedRepository[model.Group]) *NamedService[model.Group] {
	return &NamedService[model.Group]{
		repo:    repo,
		label:   "group",
		newItem: func(name string) *model.Group { return &model.Group{Name: name} },
		rename:  func(g *model.Group, name string) { g.Name = name },
		view: func(g *model.Group) dto.NamedResponse {
			return dto.NamedResponse{ID: g.ID.String(), Name: g.Name}
		},
		protected: func(g *model.Group) bool { return g.IsDefault },
	}
}

func NewUnitService(repo repository.NamedRepository[model.Unit]) *NamedService[model.Unit] {
	return &NamedService[model.Unit]{
		repo:    repo,
		label:   "unit",
		newItem: func(name string) *model.Unit { return &model.Unit{Name: name} },
		rename:  func(u *model.Unit, name string) { u.Name = name },
		view: func(u *model.Unit) dto.NamedResponse {
			return dto.NamedResponse{ID: u.ID.String(), Name: u.Name}
		},
	}
}

func (s *NamedService[T]) Create(ctx context.Context, req dto.CreateNamedRequest) (*dto.NamedResponse, error) {
	count, err := s.repo.CountByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apierror.Conflict("%s %s already exists", s.label, req.Name)
	}

	item := s.newItem(req.Name)
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("%s %s already exists", s.label, req.Name)
		}
		return nil, err
	}
	resp := s.view(item)
	return &resp, nil
}

func (s *NamedService[T]) Get(ctx context.Context, id uuid.UUID) (*dto.NamedResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("%s not found", s.label)
	}
	if err != nil {
		return nil, err
	}
	resp := s.view(item)
	return &resp, nil
}

func (s *NamedService[T]) Update(ctx context.Context, id uuid.UUID, req dto.UpdateNamedRequest) (*dto.NamedResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("%s not found", s.label)
	}
	if err != nil {
		return nil, err
	}
	if s.view(item).Name != req.Name {
		count, err := s.repo.CountByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apierror.Conflict("%s %s already exists", s.label, req.Name)
		}
	}

	s.rename(item, req.Name)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := s.view(item)
	return &resp, nil
}

func (s *NamedService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("%s not found", s.label)
	}
	if err != nil {
		return err
	}
	if s.protected != nil && s.protected(item) {
		return apierror.Validation("the default %s cannot be deleted", s.label)
	}
	return s.repo.Delete(ctx, id)
}

func (s *NamedService[T]) Search(ctx context.Context, filter dto.NamedFilter) (*dto.Pageable[dto.NamedResponse], error) {
	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.NamedResponse, 0, len(items))
	for i := range items {
		data = append(data, s.view(&items[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}
