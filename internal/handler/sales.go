package handler

import (
	"net/http"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/middleware"
	"github.com/thomasasfar/api-apotek/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Create godoc
// @Summary      Register a sale
// @Description  Creates a sale ACID: converts quantities to base units, allocates lots oldest-first, depletes stock and computes change.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Sale items and payment"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.Response
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
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

func (h *SalesHandler) Get(c *gin.Context) {
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
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        user_id    query string false "Filter by cashier"
// @Param        month      query string false "Calendar month YYYY-M"
// @Param        start_date query string false "Start date YYYY-MM-DD"
// @Param        end_date   query string false "End date YYYY-MM-DD (inclusive)"
// @Param        page       query int    false "Page (default 1)"
// @Param        size       query int    false "Page size (default 10)"
// @Success      200 {object} dto.Pageable[dto.SaleResponse]
// @Router       /api/sales [get]
func (h *SalesHandler) Search(c *gin.Context) {
	var filter dto.SaleFilter
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
