package processo

import (
	"net/http"
	"strconv"

	"github.com/cecomp/central-compras/internal/api/middleware"
	"github.com/cecomp/central-compras/internal/model"
	processoService "github.com/cecomp/central-compras/internal/service/processo"
	"github.com/gin-gonic/gin"
)

type ProcessoHandler struct {
	service *processoService.ProcessoService
}

func NewProcessoHandler(service *processoService.ProcessoService) *ProcessoHandler {
	return &ProcessoHandler{service: service}
}

// ListProcessos processos visíveis ao usuário
// @Summary Lista processos
// @Tags processos
// @Produce json
// @Param skip query int false "deslocamento" default(0)
// @Param limit query int false "tamanho da página" default(100)
// @Param modalidade_id query int false "modalidade"
// @Param fase_atual query string false "fase"
// @Param keyword query string false "número SEI ou objeto"
// @Success 200 {object} model.Response
// @Router /api/processos [get]
func (h *ProcessoHandler) ListProcessos(c *gin.Context) {
	filter := model.ProcessoFilter{
		FaseAtual: c.Query("fase_atual"),
		Keyword:   c.Query("keyword"),
	}
	var ok bool
	if filter.Skip, ok = queryInt(c, "skip", 0); !ok {
		return
	}
	if filter.Limit, ok = queryInt(c, "limit", processoService.DefaultLimit); !ok {
		return
	}
	if v := c.Query("modalidade_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.Error(400, "modalidade_id inválido"))
			return
		}
		filter.ModalidadeID = uint(id)
	}

	items, total, err := h.service.ListProcesses(c.Request.Context(), middleware.ActorFrom(c), filter)
	if err != nil {
		model.HandleServiceError(c, err, "list processes")
		return
	}

	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}))
}

// queryInt lê um inteiro da query string; responde 400 se inválido
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, name+" inválido"))
		return 0, false
	}
	return n, true
}

// CreateProcesso cadastra processo na primeira fase da modalidade
// @Summary Cria processo
// @Tags processos
// @Accept json
// @Produce json
// @Param body body model.CreateProcessoRequest true "processo"
// @Success 200 {object} model.Response
// @Router /api/processos [post]
func (h *ProcessoHandler) CreateProcesso(c *gin.Context) {
	var req model.CreateProcessoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	processo, err := h.service.CreateProcess(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		model.HandleServiceError(c, err, "create process")
		return
	}
	c.JSON(http.StatusOK, model.Success(processo))
}

func (h *ProcessoHandler) GetProcesso(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	processo, err := h.service.GetProcess(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		model.HandleServiceError(c, err, "get process")
		return
	}
	c.JSON(http.StatusOK, model.Success(processo))
}

// ListFases fases disponíveis para o processo
func (h *ProcessoHandler) ListFases(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	fases, err := h.service.AvailablePhases(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		model.HandleServiceError(c, err, "available phases")
		return
	}
	c.JSON(http.StatusOK, model.Success(fases))
}

// UpdateFase troca de fase
// @Summary Atualiza a fase do processo
// @Tags processos
// @Accept json
// @Produce json
// @Param id path int true "ID do processo"
// @Param body body model.TransitionRequest true "nova fase"
// @Success 200 {object} model.Response
// @Router /api/processos/{id}/fase [put]
func (h *ProcessoHandler) UpdateFase(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	processo, err := h.service.TransitionPhase(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		model.HandleServiceError(c, err, "transition phase")
		return
	}
	c.JSON(http.StatusOK, model.Success(processo))
}

// ListMovimentacoes histórico de fases
func (h *ProcessoHandler) ListMovimentacoes(c *gin.Context) {
	id, ok := model.ParseIDParam(c, "id")
	if !ok {
		return
	}

	movs, err := h.service.ListMovements(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		model.HandleServiceError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, model.Success(movs))
}
