package handler

import (
	"net/http"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/middleware"
	"github.com/thomasasfar/api-apotek/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

// Login godoc
// @Summary      Authenticate a user
// @Description  Validates credentials and returns a signed access token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credentials"
// @Success      200  {object} dto.UserResponse
// @Failure      401  {object} apierror.Response
// @Router       /api/users/login [post]
func (h *UsersHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Register a user
// @Description  Creates a user with a role. SUPERADMIN only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateUserRequest true "User data"
// @Success      201  {object} dto.UserResponse
// @Failure      400  {object} apierror.Response
// @Router       /api/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
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

// Current godoc
// @Summary      Current user
// @Description  Returns the profile of the authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Router       /api/users/current [get]
func (h *UsersHandler) Current(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Response{Errors: "invalid token subject"})
		return
	}
	resp, err := h.svc.Current(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary      List users
// @Produce      json
// @Security     BearerAuth
// @Tags         users
// @Param        username query string false "Filter by username"
// @Param        name     query string false "Filter by name"
// @Param        role     query string false "SUPERADMIN | PRAMUNIAGA"
// @Param        page     query int    false "Page (default 1)"
// @Param        size     query int    false "Page size (default 10)"
// @Success      200 {object} dto.Pageable[dto.UserResponse]
// @Router       /api/users [get]
func (h *UsersHandler) Search(c *gin.Context) {
	var filter dto.UserFilter
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
