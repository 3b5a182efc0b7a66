package repository

import (
	"context"

	"github.com/cecomp/central-compras/internal/model"
	"gorm.io/gorm"
)

type ProcessoRepository struct {
	db *gorm.DB
}

func NewProcessoRepository(db *gorm.DB) *ProcessoRepository {
	return &ProcessoRepository{db: db}
}

// WithTx repositório ligado a uma transação em andamento
func (r *ProcessoRepository) WithTx(tx *gorm.DB) *ProcessoRepository {
	return &ProcessoRepository{db: tx}
}

// scoped restringe a consulta ao setor do ator quando ele não é administrador
func scoped(db *gorm.DB, actor model.Actor) *gorm.DB {
	if actor.IsAdmin {
		return db
	}
	if actor.SectorID == "" {
		return db.Where("1 = 0")
	}
	return db.Where("processos.setor_origem_id = ?", actor.SectorID)
}

const viewColumns = "processos.*, setores.nome AS setor_nome, modalidades.nome AS modalidade_nome"

func withNames(db *gorm.DB) *gorm.DB {
	return db.Select(viewColumns).
		Joins("LEFT JOIN setores ON setores.id = processos.setor_origem_id").
		Joins("LEFT JOIN modalidades ON modalidades.id = processos.modalidade_id")
}

// ExistsByNumeroSEI verifica se o número SEI já foi cadastrado
func (r *ProcessoRepository) ExistsByNumeroSEI(ctx context.Context, numeroSEI string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Processo{}).
		Where("numero_sei = ?", numeroSEI).
		Count(&count).Error
	return count > 0, err
}

func (r *ProcessoRepository) Create(ctx context.Context, processo *model.Processo) error {
	return r.db.WithContext(ctx).Create(processo).Error
}

// FindByIDScoped busca o processo dentro do escopo do ator.
// Processo de outro setor é tratado como inexistente.
func (r *ProcessoRepository) FindByIDScoped(ctx context.Context, actor model.Actor, id uint, lock bool) (*model.Processo, error) {
	q := scoped(r.db.WithContext(ctx), actor)
	if lock {
		q = forUpdate(q)
	}
	var processo model.Processo
	if err := q.Where("processos.id = ?", id).First(&processo).Error; err != nil {
		return nil, err
	}
	return &processo, nil
}

// FindViewScoped detalhe com nomes de setor e modalidade
func (r *ProcessoRepository) FindViewScoped(ctx context.Context, actor model.Actor, id uint) (*model.ProcessoView, error) {
	var views []model.ProcessoView
	err := withNames(scoped(r.db.WithContext(ctx).Model(&model.Processo{}), actor)).
		Where("processos.id = ?", id).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

// UpdateFields grava fase, objeto e valor do processo
func (r *ProcessoRepository) UpdateFields(ctx context.Context, processo *model.Processo) error {
	return r.db.WithContext(ctx).Model(processo).
		Select("fase_atual", "objeto", "valor_previsto", "updated_at").
		Updates(processo).Error
}

// ListScoped lista processos visíveis para o ator
func (r *ProcessoRepository) ListScoped(ctx context.Context, actor model.Actor, filter model.ProcessoFilter) ([]model.ProcessoView, int64, error) {
	base := func() *gorm.DB {
		q := scoped(r.db.WithContext(ctx).Model(&model.Processo{}), actor)
		if filter.ModalidadeID > 0 {
			q = q.Where("processos.modalidade_id = ?", filter.ModalidadeID)
		}
		if filter.FaseAtual != "" {
			q = q.Where("processos.fase_atual = ?", filter.FaseAtual)
		}
		if filter.Keyword != "" {
			like := "%" + filter.Keyword + "%"
			q = q.Where("(processos.numero_sei LIKE ? OR processos.objeto LIKE ?)", like, like)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []model.ProcessoView{}
	err := withNames(base()).
		Order("processos.data_autorizacao DESC, processos.id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ProcessoRepository) CreateMovement(ctx context.Context, mov *model.ProcessoMovimentacao) error {
	return r.db.WithContext(ctx).Create(mov).Error
}

// ListMovements histórico de fases, do mais antigo ao mais recente
func (r *ProcessoRepository) ListMovements(ctx context.Context, processoID uint) ([]model.ProcessoMovimentacao, error) {
	movs := []model.ProcessoMovimentacao{}
	err := r.db.WithContext(ctx).
		Where("processo_id = ?", processoID).
		Order("created_at ASC, id ASC").
		Find(&movs).Error
	return movs, err
}
