package database

import (
	"fmt"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/pkg/logger"
	"gorm.io/gorm"
)

// Tables modelos persistidos, na ordem de criação
func Tables() []interface{} {
	return []interface{}{
		&model.Setor{},
		&model.Usuario{},
		&model.Modalidade{},
		&model.FaseTemplate{},
		&model.Processo{},
		&model.ProcessoMovimentacao{},
	}
}

// AutoMigrateAll cria apenas as tabelas que ainda não existem.
// Tabelas existentes nunca são apagadas nem recriadas.
func AutoMigrateAll(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	var tablesToMigrate []interface{}
	for _, table := range Tables() {
		if db.Migrator().HasTable(table) {
			continue
		}
		tablesToMigrate = append(tablesToMigrate, table)
	}

	if len(tablesToMigrate) == 0 {
		logger.Info("All database tables already exist, no migration needed")
		return nil
	}

	logger.Infof("Starting auto-migration for %d table(s)...", len(tablesToMigrate))
	if err := db.AutoMigrate(tablesToMigrate...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	logger.Infof("Successfully migrated %d table(s)", len(tablesToMigrate))
	return nil
}
