package app

import (
	"context"
	"fmt"

	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/database"
	"github.com/cecomp/central-compras/pkg/logger"
)

// App contexto da aplicação
type App struct {
	Config   *config.Config
	Repos    *Repositories
	Services *Services
	Handlers *Handlers
}

// Initialize inicializa a aplicação
func Initialize(cfgPath string) (app *App, err error) {
	// 1. Bootstrap (logger, banco, redis)
	cfg, err := Bootstrap(cfgPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			database.Close()
		}
	}()

	db := database.DB

	// 2. Repositórios
	repos := InitializeRepositories(db)
	logger.Infof("Repositories initialized")

	// 3. Serviços
	services := InitializeServices(db, repos, cfg)
	logger.Infof("Services initialized")

	// 4. Dados iniciais (setores e administrador padrão), uma vez por subida
	if err = services.Seed.Run(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed initial data: %w", err)
	}

	// 5. Handlers
	handlers := InitializeHandlers(db, repos, services)
	logger.Infof("Handlers initialized")

	return &App{
		Config:   cfg,
		Repos:    repos,
		Services: services,
		Handlers: handlers,
	}, nil
}
