package system

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SetorHandler struct {
	repo *repository.SetorRepository
}

func NewSetorHandler(repo *repository.SetorRepository) *SetorHandler {
	return &SetorHandler{repo: repo}
}

// ListSetores lista os setores
// @Summary Lista setores
// @Tags setores
// @Produce json
// @Success 200 {object} model.Response
// @Router /api/setores [get]
func (h *SetorHandler) ListSetores(c *gin.Context) {
	setores, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "list sectors")
		return
	}
	c.JSON(http.StatusOK, model.Success(setores))
}

// CreateSetor cadastra um setor (administrador)
func (h *SetorHandler) CreateSetor(c *gin.Context) {
	var req model.CreateSetorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		c.JSON(http.StatusBadRequest, model.Error(400, "nome é obrigatório"))
		return
	}

	setor := &model.Setor{ID: uuid.New().String(), Nome: nome}
	if err := h.repo.Create(c.Request.Context(), setor); err != nil {
		if repository.IsDuplicateKeyError(err) {
			model.HandleServiceError(c, fmt.Errorf("%w: setor %q já existe", model.ErrDuplicate, nome))
			return
		}
		model.HandleError(c, http.StatusInternalServerError, err, "create sector")
		return
	}

	c.JSON(http.StatusOK, model.Success(setor))
}
