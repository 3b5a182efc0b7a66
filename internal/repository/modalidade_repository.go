package repository

import (
	"context"
	"fmt"

	"github.com/cecomp/central-compras/internal/model"
	"gorm.io/gorm"
)

type ModalidadeRepository struct {
	db *gorm.DB
}

func NewModalidadeRepository(db *gorm.DB) *ModalidadeRepository {
	return &ModalidadeRepository{db: db}
}

// WithTx repositório ligado a uma transação em andamento
func (r *ModalidadeRepository) WithTx(tx *gorm.DB) *ModalidadeRepository {
	return &ModalidadeRepository{db: tx}
}

func orderedPhases(db *gorm.DB) *gorm.DB {
	return db.Order("ordem ASC, id ASC")
}

// CreateWithPhases grava a modalidade e suas fases (ordem = posição + 1) numa única transação
func (r *ModalidadeRepository) CreateWithPhases(ctx context.Context, nome string, fases []string) (*model.Modalidade, error) {
	modalidade := model.Modalidade{Nome: nome}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Fases").Create(&modalidade).Error; err != nil {
			return err
		}

		templates := make([]model.FaseTemplate, len(fases))
		for i, nome := range fases {
			templates[i] = model.FaseTemplate{
				ModalidadeID: modalidade.ID,
				Nome:         nome,
				Ordem:        i + 1,
			}
		}
		if len(templates) > 0 {
			if err := tx.Create(&templates).Error; err != nil {
				return fmt.Errorf("failed to create phases: %w", err)
			}
		}
		modalidade.Fases = templates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &modalidade, nil
}

// FindAll lista as modalidades com as fases ordenadas
func (r *ModalidadeRepository) FindAll(ctx context.Context) ([]model.Modalidade, error) {
	var modalidades []model.Modalidade
	err := r.db.WithContext(ctx).
		Preload("Fases", orderedPhases).
		Order("nome ASC, id ASC").
		Find(&modalidades).Error
	return modalidades, err
}

func (r *ModalidadeRepository) FindByID(ctx context.Context, id uint) (*model.Modalidade, error) {
	var modalidade model.Modalidade
	err := r.db.WithContext(ctx).
		Preload("Fases", orderedPhases).
		First(&modalidade, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &modalidade, nil
}

// FindPhases fases da modalidade em ordem crescente (estável)
func (r *ModalidadeRepository) FindPhases(ctx context.Context, modalidadeID uint) ([]model.FaseTemplate, error) {
	var fases []model.FaseTemplate
	err := orderedPhases(r.db.WithContext(ctx)).
		Where("modalidade_id = ?", modalidadeID).
		Find(&fases).Error
	return fases, err
}

// FirstPhase fase de menor ordem; gorm.ErrRecordNotFound se não houver fases
func (r *ModalidadeRepository) FirstPhase(ctx context.Context, modalidadeID uint) (*model.FaseTemplate, error) {
	var fase model.FaseTemplate
	err := orderedPhases(r.db.WithContext(ctx)).
		Where("modalidade_id = ?", modalidadeID).
		First(&fase).Error
	if err != nil {
		return nil, err
	}
	return &fase, nil
}

// Delete remove a modalidade e suas fases. Recusa se houver processos vinculados.
func (r *ModalidadeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Processo{}).Where("modalidade_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: modalidade possui %d processo(s) vinculado(s)", model.ErrConflict, count)
		}

		if err := tx.Where("modalidade_id = ?", id).Delete(&model.FaseTemplate{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Modalidade{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
