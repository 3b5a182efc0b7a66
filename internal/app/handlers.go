package app

import (
	"github.com/cecomp/central-compras/internal/api/handler"
	"gorm.io/gorm"
)

// Handlers todas as instâncias de handler
type Handlers struct {
	Auth       *handler.AuthHandler
	Setor      *handler.SetorHandler
	Health     *handler.HealthHandler
	Modalidade *handler.ModalidadeHandler
	Processo   *handler.ProcessoHandler
}

// InitializeHandlers inicializa os handlers
func InitializeHandlers(db *gorm.DB, repos *Repositories, services *Services) *Handlers {
	return &Handlers{
		Auth:       handler.NewAuthHandler(services.Auth),
		Setor:      handler.NewSetorHandler(repos.Setor),
		Health:     handler.NewHealthHandler(db),
		Modalidade: handler.NewModalidadeHandler(services.Template),
		Processo:   handler.NewProcessoHandler(services.Processo),
	}
}
