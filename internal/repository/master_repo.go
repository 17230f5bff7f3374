package repository

import (
	"context"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NamedModel constrains the master entities that consist of little more than
// a unique name (categories, groups, units of measure).
type NamedModel interface {
	model.Category | model.Group | model.Unit
}

// NamedRepository is the shared data-access contract for name-only master
// entities.
type NamedRepository[T NamedModel] interface {
	Create(ctx context.Context, m *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	CountByName(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, m *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter dto.NamedFilter) ([]T, int64, error)
}

type namedRepo[T NamedModel] struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) NamedRepository[model.Category] {
	return &namedRepo[model.Category]{db: db}
}

func NewGroupRepository(db *gorm.DB) NamedRepository[model.Group] {
	return &namedRepo[model.Group]{db: db}
}

func NewUnitRepository(db *gorm.DB) NamedRepository[model.Unit] {
	return &namedRepo[model.Unit]{db: db}
}

func (r *namedRepo[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *namedRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *namedRepo[T]) CountByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Where("name = ?", name).Count(&count).Error
	return count, err
}

func (r *namedRepo[T]) Update(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *namedRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

func (r *namedRepo[T]) Search(ctx context.Context, filter dto.NamedFilter) ([]T, int64, error) {
	var items []T
	var total int64

	q := r.db.WithContext(ctx).Model(new(T))
	q = ApplyScopes(q, Contains("name", filter.Name))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := ApplyScopes(q, Paginate(filter.Page, filter.Size)).
		Order("name ASC").
		Find(&items).Error
	return items, total, err
}
