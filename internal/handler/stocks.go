package handler

import (
	"net/http"

	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/service"

	"github.com/gin-gonic/gin"
)

type StocksHandler struct{ svc service.StockService }

func NewStocksHandler(svc service.StockService) *StocksHandler { return &StocksHandler{svc: svc} }

func (h *StocksHandler) Get(c *gin.Context) {
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
// @Summary      List stock lots
// @Description  Paginated lot search; before_expired keeps only lots expiring within N days.
// @Tags         stocks
// @Produce      json
// @Security     BearerAuth
// @Param        product        query string false "Filter by product name"
// @Param        batch_number   query string false "Filter by batch number"
// @Param        before_expired query int    false "Days until expiry"
// @Param        page           query int    false "Page (default 1)"
// @Param        size           query int    false "Page size (default 10)"
// @Success      200 {object} dto.Pageable[dto.StockResponse]
// @Router       /api/stocks [get]
func (h *StocksHandler) Search(c *gin.Context) {
	var filter dto.StockFilter
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
