package handler

import (
	"net/http"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/middleware"
	"github.com/thomasasfar/api-apotek/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchasesHandler struct{ svc service.PurchaseService }

func NewPurchasesHandler(svc service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{svc: svc}
}

// Create godoc
// @Summary      Book a purchase
// @Description  Atomically records a supplier invoice and opens one stock lot per line, converted to base units.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreatePurchaseRequest true "Invoice data"
// @Success      201  {object} dto.PurchaseResponse
// @Failure      400  {object} apierror.Response
// @Router       /api/purchases [post]
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Response{Errors: "invalid token subject"})
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchasesHandler) Get(c *gin.Context) {
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

// Search godoc
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        code        query string false "Filter by invoice code"
// @Param        supplier_id query string false "Filter by supplier"
// @Param        user_id     query string false "Filter by booking user"
// @Param        month       query string false "Calendar month YYYY-M"
// @Param        page        query int    false "Page (default 1)"
// @Param        size        query int    false "Page size (default 10)"
// @Success      200 {object} dto.Pageable[dto.PurchaseListItem]
// @Router       /api/purchases [get]
func (h *PurchasesHandler) Search(c *gin.Context) {
	var filter dto.PurchaseFilter
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
