package app

import (
	"time"

	"github.com/cecomp/central-compras/internal/service"
	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/distributed"
	pkgredis "github.com/cecomp/central-compras/pkg/redis"
	"gorm.io/gorm"
)

// Services todas as instâncias de serviço
type Services struct {
	Auth     *service.AuthService
	Template *service.TemplateService
	Processo *service.ProcessoService
	Seed     *service.SeedService
}

// InitializeServices inicializa os serviços
func InitializeServices(db *gorm.DB, repos *Repositories, cfg *config.Config) *Services {
	// pkgredis.Client é nil quando o Redis está desabilitado: o lock vira no-op
	var locker *distributed.Locker
	if pkgredis.IsEnabled() {
		locker = distributed.NewLocker(pkgredis.Client, time.Duration(cfg.Redis.LockTTL)*time.Second)
	}

	return &Services{
		Auth:     service.NewAuthService(repos.User, cfg.Security.JWTSecret, time.Duration(cfg.Security.TokenTTLHours)*time.Hour),
		Template: service.NewTemplateService(repos.Modalidade, cfg.Workflow.StandardPhases),
		Processo: service.NewProcessoService(db, repos.Processo, repos.Modalidade, repos.Setor, locker, cfg.Workflow.FallbackPhase),
		Seed:     service.NewSeedService(repos.Setor, repos.User, cfg.Seed),
	}
}
