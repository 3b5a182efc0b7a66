package app

import (
	"log"
	"os"

	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/database"
	"github.com/cecomp/central-compras/pkg/logger"
	pkgredis "github.com/cecomp/central-compras/pkg/redis"
	"github.com/joho/godotenv"
)

// Bootstrap inicializa a infraestrutura (logger, banco, redis)
func Bootstrap(cfgPath string) (*config.Config, error) {
	// .env é opcional; variáveis já definidas no ambiente prevalecem
	_ = godotenv.Load()

	if cfgPath == "" {
		cfgPath = os.Getenv("CECOMP_CONFIG")
		if cfgPath == "" {
			cfgPath = "config/config.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, err
	}
	logger.Infof("Database ready: driver=%s", cfg.Database.Driver)

	// Redis é opcional: sem ele o índice único garante a unicidade do número SEI
	if err := pkgredis.Init(&cfg.Redis); err != nil {
		logger.Warnf("Redis initialization failed: %v", err)
		logger.Info("   → process creation will rely on the database unique index only")
	} else if cfg.Redis.Enabled {
		logger.Infof("Redis initialized - distributed lock enabled")
	}

	return cfg, nil
}
