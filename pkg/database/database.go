package database

import (
	"fmt"

	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/logger"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init abre a conexão, valida com Ping e cria as tabelas que faltam
func Init(cfg *config.DatabaseConfig) error {
	cfg.SetDefaults()

	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db

	if err := AutoMigrateAll(DB); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	logger.Infof("Database initialized successfully")
	return nil
}

// Ping verifica se a conexão global continua ativa
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
