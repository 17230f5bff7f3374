package handler

import (
	"net/http"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"
	"github.com/thomasasfar/api-apotek/internal/service"

	"github.com/gin-gonic/gin"
)

// NamedHandler serves the CRUD routes of one name-only master entity
// (categories, groups, units).
type NamedHandler[T repository.NamedModel] struct {
	svc *service.NamedService[T]
}

func NewCategoriesHandler(svc *service.NamedService[model.Category]) *NamedHandler[model.Category] {
	return &NamedHandler[model.Category]{svc: svc}
}

func NewGroupsHandler(svc *service.NamedService[model.Group]) *NamedHandler[model.Group] {
	return &NamedHandler[model.Group]{svc: svc}
}

func NewUnitsHandler(svc *service.NamedService[model.Unit]) *NamedHandler[model.Unit] {
	return &NamedHandler[model.Unit]{svc: svc}
}

func (h *NamedHandler[T]) Create(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *NamedHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NamedHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NamedHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NamedHandler[T]) Search(c *gin.Context) {
	var filter dto.NamedFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
