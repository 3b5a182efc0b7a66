package workflow

import (
	"net/http"

	"github.com/cecomp/central-compras/internal/api/middleware"
	"github.com/cecomp/central-compras/internal/model"
	workflowService "github.com/cecomp/central-compras/internal/service/workflow"
	"github.com/gin-gonic/gin"
)

// ModalidadeHandler cadastro e consulta de modalidades
type ModalidadeHandler struct {
	service *workflowService.TemplateService
}

func NewModalidadeHandler(service *workflowService.TemplateService) *ModalidadeHandler {
	return &ModalidadeHandler{service: service}
}

// ListModalidades modalidades com suas fases
// @Summary Lista modalidades
// @Tags modalidades
// @Produce json
// @Success 200 {object} model.Response
// @Router /api/modalidades [get]
func (h *ModalidadeHandler) ListModalidades(c *gin.Context) {
	modalidades, err := h.service.ListWorkflows(c.Request.Context())
	if err != nil {
		model.HandleServiceError(c, err, "list workflows")
		return
	}
	c.JSON(http.StatusOK, model.Success(modalidades))
}

// StandardPhases catálogo de fases padrão para o formulário
func (h *ModalidadeHandler) StandardPhases(c *gin.Context) {
	c.JSON(http.StatusOK, model.Success(h.service.StandardPhases()))
}

func (h *ModalidadeHandler) GetModalidade(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	modalidade, err := h.service.GetWorkflow(c.Request.Context(), id)
	if err != nil {
		model.HandleServiceError(c, err, "get workflow")
		return
	}
	c.JSON(http.StatusOK, model.Success(modalidade))
}

// ListFases fases da modalidade em ordem
func (h *ModalidadeHandler) ListFases(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	fases, err := h.service.ListPhases(c.Request.Context(), id)
	if err != nil {
		model.HandleServiceError(c, err, "list phases")
		return
	}
	c.JSON(http.StatusOK, model.Success(fases))
}

// CreateModalidade cadastra modalidade a partir das fases padrão escolhidas e das extras
// @Summary Cria modalidade
// @Tags modalidades
// @Accept json
// @Produce json
// @Param body body model.CreateModalidadeRequest true "modalidade"
// @Success 200 {object} model.Response
// @Router /api/modalidades [post]
func (h *ModalidadeHandler) CreateModalidade(c *gin.Context) {
	var req model.CreateModalidadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	modalidade, err := h.service.CreateWorkflowFromInput(c.Request.Context(), req.Nome, req.FasesPadrao, req.FasesExtras)
	if err != nil {
		model.HandleServiceError(c, err, "create workflow")
		return
	}
	c.JSON(http.StatusOK, model.Success(modalidade))
}

func (h *ModalidadeHandler) DeleteModalidade(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWorkflow(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		model.HandleServiceError(c, err, "delete workflow")
		return
	}
	c.JSON(http.StatusOK, model.Success(nil))
}
