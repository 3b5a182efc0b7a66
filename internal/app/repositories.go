package app

import (
	"github.com/cecomp/central-compras/internal/repository"
	"gorm.io/gorm"
)

// Repositories todas as instâncias de repositório
type Repositories struct {
	Setor      *repository.SetorRepository
	User       *repository.UserRepository
	Modalidade *repository.ModalidadeRepository
	Processo   *repository.ProcessoRepository
}

// InitializeRepositories inicializa os repositórios
func InitializeRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Setor:      repository.NewSetorRepository(db),
		User:       repository.NewUserRepository(db),
		Modalidade: repository.NewModalidadeRepository(db),
		Processo:   repository.NewProcessoRepository(db),
	}
}
