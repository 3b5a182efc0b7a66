package auth

import (
	"net/http"

	"github.com/cecomp/central-compras/internal/api/middleware"
	"github.com/cecomp/central-compras/internal/model"
	authService "github.com/cecomp/central-compras/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *authService.AuthService
}

func NewAuthHandler(service *authService.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login autenticação por login e senha
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "credenciais"
// @Success 200 {object} model.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		model.HandleServiceError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, model.Success(resp))
}

// Me usuário autenticado e o ator derivado do token
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	user, err := h.service.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		model.HandleServiceError(c, err, "current user")
		return
	}

	c.JSON(http.StatusOK, model.Success(gin.H{
		"usuario": user,
		"actor":   actor,
	}))
}
