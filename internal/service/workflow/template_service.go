package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/cecomp/central-compras/pkg/metrics"
)

// TemplateService cadastro e consulta de modalidades (modelos de fluxo)
type TemplateService struct {
	repo           *repository.ModalidadeRepository
	standardPhases []string
}

func NewTemplateService(repo *repository.ModalidadeRepository, standardPhases []string) *TemplateService {
	return &TemplateService{
		repo:           repo,
		standardPhases: append([]string(nil), standardPhases...),
	}
}

// StandardPhases catálogo de fases oferecido no formulário de cadastro
func (s *TemplateService) StandardPhases() []string {
	return append([]string(nil), s.standardPhases...)
}

// CreateWorkflowFromInput monta a sequência (padrão + extras) e cadastra a modalidade
func (s *TemplateService) CreateWorkflowFromInput(ctx context.Context, nome string, preset []string, freeform string) (*model.Modalidade, error) {
	return s.CreateWorkflow(ctx, nome, BuildSequence(preset, freeform))
}

// CreateWorkflow cadastra a modalidade com as fases na ordem recebida.
// Nada é gravado se o nome ou a lista de fases for inválido.
func (s *TemplateService) CreateWorkflow(ctx context.Context, nome string, fases []string) (*model.Modalidade, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, fmt.Errorf("%w: nome da modalidade é obrigatório", model.ErrValidation)
	}
	if len(fases) == 0 {
		return nil, fmt.Errorf("%w: a modalidade precisa de ao menos uma fase", model.ErrValidation)
	}
	for i, fase := range fases {
		if strings.TrimSpace(fase) == "" {
			return nil, fmt.Errorf("%w: fase %d sem nome", model.ErrValidation, i+1)
		}
	}

	modalidade, err := s.repo.CreateWithPhases(ctx, nome, fases)
	if err != nil {
		logger.Errorf("Failed to create workflow %q: %v", nome, err)
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	metrics.WorkflowsCreated.Inc()
	logger.Infof("Workflow created: id=%d, name=%s, phases=%d", modalidade.ID, modalidade.Nome, len(fases))
	return modalidade, nil
}

// ListWorkflows modalidades por nome, com as fases em ordem
func (s *TemplateService) ListWorkflows(ctx context.Context) ([]model.Modalidade, error) {
	modalidades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return modalidades, nil
}

func (s *TemplateService) GetWorkflow(ctx context.Context, id uint) (*model.Modalidade, error) {
	modalidade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: modalidade %d", model.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return modalidade, nil
}

// ListPhases fases da modalidade em ordem crescente. Modalidade inexistente devolve lista vazia.
func (s *TemplateService) ListPhases(ctx context.Context, modalidadeID uint) ([]model.FaseTemplate, error) {
	fases, err := s.repo.FindPhases(ctx, modalidadeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return fases, nil
}

// DeleteWorkflow remove a modalidade; recusada enquanto houver processos vinculados
func (s *TemplateService) DeleteWorkflow(ctx context.Context, actor model.Actor, id uint) error {
	if !actor.IsAdmin {
		return fmt.Errorf("%w: apenas administradores removem modalidades", model.ErrForbidden)
	}

	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		logger.Infof("Workflow deleted: id=%d, by=%s", id, actor.UserName)
		return nil
	case errors.Is(err, model.ErrConflict):
		return err
	case repository.IsNotFound(err):
		return fmt.Errorf("%w: modalidade %d", model.ErrNotFound, id)
	default:
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
}
