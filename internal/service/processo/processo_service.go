package processo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/cecomp/central-compras/pkg/distributed"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/cecomp/central-compras/pkg/metrics"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// ProcessoService ciclo de vida dos processos: cadastro, troca de fase e consulta.
// Toda operação recebe o ator explicitamente e é escopada pelo setor dele.
type ProcessoService struct {
	db            *gorm.DB
	processos     *repository.ProcessoRepository
	modalidades   *repository.ModalidadeRepository
	setores       *repository.SetorRepository
	locker        *distributed.Locker
	fallbackPhase string
	now           func() time.Time
}

func NewProcessoService(
	db *gorm.DB,
	processos *repository.ProcessoRepository,
	modalidades *repository.ModalidadeRepository,
	setores *repository.SetorRepository,
	locker *distributed.Locker,
	fallbackPhase string,
) *ProcessoService {
	return &ProcessoService{
		db:            db,
		processos:     processos,
		modalidades:   modalidades,
		setores:       setores,
		locker:        locker,
		fallbackPhase: fallbackPhase,
		now:           time.Now,
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrValidation):
		return "validation"
	case errors.Is(err, model.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// persistence mantém erros já classificados e embrulha o resto como falha de persistência
func persistence(err error) error {
	for _, kind := range []error{model.ErrValidation, model.ErrDuplicate, model.ErrNotFound, model.ErrConflict, model.ErrForbidden} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", model.ErrPersistence, err)
}

// CreateProcess cadastra um processo na primeira fase da modalidade
func (s *ProcessoService) CreateProcess(ctx context.Context, actor model.Actor, input model.CreateProcessoRequest) (p *model.Processo, err error) {
	defer func() { metrics.ProcessesCreated.WithLabelValues(outcome(err)).Inc() }()

	numeroSEI := strings.TrimSpace(input.NumeroSEI)
	objeto := strings.TrimSpace(input.Objeto)
	if numeroSEI == "" {
		return nil, fmt.Errorf("%w: numero_sei é obrigatório", model.ErrValidation)
	}
	if objeto == "" {
		return nil, fmt.Errorf("%w: objeto é obrigatório", model.ErrValidation)
	}
	if input.ValorPrevisto.IsNegative() {
		return nil, fmt.Errorf("%w: valor_previsto não pode ser negativo", model.ErrValidation)
	}

	// operador fica no próprio setor; administrador pode escolher outro
	sectorID := actor.SectorID
	if requested := strings.TrimSpace(input.SetorOrigemID); requested != "" && actor.CanAccessSector(requested) {
		sectorID = requested
	}
	if sectorID == "" {
		return nil, fmt.Errorf("%w: setor de origem não definido", model.ErrValidation)
	}

	processo := &model.Processo{
		NumeroSEI:       numeroSEI,
		Objeto:          objeto,
		ValorPrevisto:   input.ValorPrevisto.Round(2),
		DataAutorizacao: s.now(),
		ModalidadeID:    input.ModalidadeID,
		SetorOrigemID:   sectorID,
	}

	err = s.locker.WithLock(ctx, "processo:sei:"+numeroSEI, func() error {
		return repository.Transaction(ctx, s.db, func(tx *gorm.DB) error {
			return s.createInTx(ctx, tx, processo)
		})
	})
	if errors.Is(err, distributed.ErrLockHeld) {
		return nil, fmt.Errorf("%w: numero_sei %s em cadastro por outra requisição", model.ErrConflict, numeroSEI)
	}
	if err != nil {
		// violação do índice único pode aparecer no insert ou só no commit
		if !errors.Is(err, model.ErrDuplicate) && repository.IsDuplicateKeyError(err) {
			err = fmt.Errorf("%w: Número SEI já cadastrado", model.ErrDuplicate)
		}
		err = persistence(err)
		if errors.Is(err, model.ErrPersistence) {
			logger.Errorf("Failed to create process %s: %v", numeroSEI, err)
		}
		return nil, err
	}

	logger.Infof("Process created: id=%d, numero_sei=%s, phase=%s, sector=%s, by=%s",
		processo.ID, processo.NumeroSEI, processo.FaseAtual, processo.SetorOrigemID, actor.UserName)
	return processo, nil
}

func (s *ProcessoService) createInTx(ctx context.Context, tx *gorm.DB, processo *model.Processo) error {
	processos := s.processos.WithTx(tx)

	exists, err := processos.ExistsByNumeroSEI(ctx, processo.NumeroSEI)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: Número SEI já cadastrado", model.ErrDuplicate)
	}

	if _, err := s.setores.WithTx(tx).FindByID(ctx, processo.SetorOrigemID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: setor %s inexistente", model.ErrValidation, processo.SetorOrigemID)
		}
		return err
	}

	// modalidade sem fases ou inexistente: fase padrão
	processo.FaseAtual = s.fallbackPhase
	first, err := s.modalidades.WithTx(tx).FirstPhase(ctx, processo.ModalidadeID)
	switch {
	case err == nil:
		processo.FaseAtual = first.Nome
	case !repository.IsNotFound(err):
		return err
	}

	return processos.Create(ctx, processo)
}

// TransitionPhase move o processo para outra fase da sua modalidade,
// atualizando opcionalmente objeto e valor, e registra a movimentação
func (s *ProcessoService) TransitionPhase(ctx context.Context, actor model.Actor, id uint, input model.TransitionRequest) (p *model.Processo, err error) {
	defer func() { metrics.PhaseTransitions.WithLabelValues(outcome(err)).Inc() }()

	target := strings.TrimSpace(input.FaseAtual)
	if target == "" {
		return nil, fmt.Errorf("%w: fase_atual é obrigatória", model.ErrValidation)
	}
	var objeto *string
	if input.Objeto != nil {
		trimmed := strings.TrimSpace(*input.Objeto)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: objeto não pode ficar vazio", model.ErrValidation)
		}
		objeto = &trimmed
	}
	if input.ValorPrevisto != nil && input.ValorPrevisto.IsNegative() {
		return nil, fmt.Errorf("%w: valor_previsto não pode ser negativo", model.ErrValidation)
	}

	var previous string
	err = repository.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		processos := s.processos.WithTx(tx)

		current, err := processos.FindByIDScoped(ctx, actor, id, true)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: processo %d", model.ErrNotFound, id)
			}
			return err
		}

		fases, err := s.modalidades.WithTx(tx).FindPhases(ctx, current.ModalidadeID)
		if err != nil {
			return err
		}
		if !containsPhase(fases, target) {
			return fmt.Errorf("%q: %w", target, model.ErrPhaseNotInWorkflow)
		}

		previous = current.FaseAtual
		changed := previous != target
		current.FaseAtual = target
		if objeto != nil && *objeto != current.Objeto {
			current.Objeto = *objeto
			changed = true
		}
		if input.ValorPrevisto != nil && !input.ValorPrevisto.Equal(current.ValorPrevisto) {
			current.ValorPrevisto = input.ValorPrevisto.Round(2)
			changed = true
		}

		p = current
		if !changed {
			return nil
		}

		if err := processos.UpdateFields(ctx, current); err != nil {
			return err
		}
		if previous == target {
			return nil
		}
		return processos.CreateMovement(ctx, &model.ProcessoMovimentacao{
			ProcessoID:   current.ID,
			FaseAnterior: previous,
			FaseNova:     target,
			UsuarioID:    actor.UserID,
			UsuarioNome:  actor.UserName,
		})
	})
	if err != nil {
		err = persistence(err)
		if errors.Is(err, model.ErrPersistence) {
			logger.Errorf("Failed to transition process %d to %q: %v", id, target, err)
		}
		return nil, err
	}

	if previous != target {
		logger.Infof("Process %d moved: %q -> %q by %s", id, previous, target, actor.UserName)
	}
	return p, nil
}

func containsPhase(fases []model.FaseTemplate, name string) bool {
	for _, f := range fases {
		if f.Nome == name {
			return true
		}
	}
	return false
}

// ListProcesses processos visíveis ao ator, paginados
func (s *ProcessoService) ListProcesses(ctx context.Context, actor model.Actor, filter model.ProcessoFilter) ([]model.ProcessoView, int64, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	filter.FaseAtual = strings.TrimSpace(filter.FaseAtual)
	filter.Keyword = strings.TrimSpace(filter.Keyword)

	items, total, err := s.processos.ListScoped(ctx, actor, filter)
	if err != nil {
		return nil, 0, persistence(err)
	}
	return items, total, nil
}

// GetProcess detalhe do processo; fora do escopo do ator é tratado como inexistente
func (s *ProcessoService) GetProcess(ctx context.Context, actor model.Actor, id uint) (*model.ProcessoView, error) {
	view, err := s.processos.FindViewScoped(ctx, actor, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: processo %d", model.ErrNotFound, id)
		}
		return nil, persistence(err)
	}
	return view, nil
}

func (s *ProcessoService) findScoped(ctx context.Context, actor model.Actor, id uint) (*model.Processo, error) {
	p, err := s.processos.FindByIDScoped(ctx, actor, id, false)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: processo %d", model.ErrNotFound, id)
		}
		return nil, persistence(err)
	}
	return p, nil
}

// AvailablePhases fases para as quais o processo pode ser movido
func (s *ProcessoService) AvailablePhases(ctx context.Context, actor model.Actor, id uint) ([]model.FaseTemplate, error) {
	p, err := s.findScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	fases, err := s.modalidades.FindPhases(ctx, p.ModalidadeID)
	if err != nil {
		return nil, persistence(err)
	}
	return fases, nil
}

// ListMovements histórico de fases do processo
func (s *ProcessoService) ListMovements(ctx context.Context, actor model.Actor, id uint) ([]model.ProcessoMovimentacao, error) {
	if _, err := s.findScoped(ctx, actor, id); err != nil {
		return nil, err
	}
	movs, err := s.processos.ListMovements(ctx, id)
	if err != nil {
		return nil, persistence(err)
	}
	return movs, nil
}
