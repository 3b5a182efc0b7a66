package repository

import (
	"context"

	"github.com/cecomp/central-compras/internal/model"
	"gorm.io/gorm"
)

type SetorRepository struct {
	db *gorm.DB
}

func NewSetorRepository(db *gorm.DB) *SetorRepository {
	return &SetorRepository{db: db}
}

// WithTx repositório ligado a uma transação em andamento
func (r *SetorRepository) WithTx(tx *gorm.DB) *SetorRepository {
	return &SetorRepository{db: tx}
}

func (r *SetorRepository) Create(ctx context.Context, setor *model.Setor) error {
	return r.db.WithContext(ctx).Create(setor).Error
}

// FindAll lista os setores em ordem alfabética
func (r *SetorRepository) FindAll(ctx context.Context) ([]model.Setor, error) {
	var setores []model.Setor
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&setores).Error
	return setores, err
}

func (r *SetorRepository) FindByID(ctx context.Context, id string) (*model.Setor, error) {
	var setor model.Setor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&setor).Error; err != nil {
		return nil, err
	}
	return &setor, nil
}

func (r *SetorRepository) FindByNome(ctx context.Context, nome string) (*model.Setor, error) {
	var setor model.Setor
	if err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&setor).Error; err != nil {
		return nil, err
	}
	return &setor, nil
}
