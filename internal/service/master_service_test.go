package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedService_CreateAndRename(t *testing.T) {
	svc := NewUnitService(newStubUnitRepo())

	created, err := svc.Create(context.Background(), dto.CreateNamedRequest{Name: "tablet"})
	require.NoError(t, err)
	assert.Equal(t, "tablet", created.Name)

	_, err = svc.Create(context.Background(), dto.CreateNamedRequest{Name: "tablet"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "unit tablet already exists")

	updated, err := svc.Update(context.Background(), mustParseUUID(t, created.ID), dto.UpdateNamedRequest{Name: "kaplet"})
	require.NoError(t, err)
	assert.Equal(t, "kaplet", updated.Name)
}

func TestNamedService_GetNotFound(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
	assert.Equal(t, "category not found", err.Error())
}

func TestNamedService_DefaultRowCannotBeDeleted(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	fallback := &model.Category{Name: "None", IsDefault: true}
	require.NoError(t, repo.Create(context.Background(), fallback))

	err := svc.Delete(context.Background(), fallback.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
	assert.Contains(t, err.Error(), "cannot be deleted")

	_, findErr := repo.FindByID(context.Background(), fallback.ID)
	assert.NoError(t, findErr)
}

func TestNamedService_DeleteRegularRow(t *testing.T) {
	repo := newStubGroupRepo()
	svc := NewGroupService(repo)

	created, err := svc.Create(context.Background(), dto.CreateNamedRequest{Name: "Antibiotic"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), mustParseUUID(t, created.ID)))

	_, err = svc.Get(context.Background(), mustParseUUID(t, created.ID))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
}
