package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cecomp/central-compras/internal/api/router"
	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/database"
	"github.com/cecomp/central-compras/pkg/logger"
	pkgredis "github.com/cecomp/central-compras/pkg/redis"
)

// StartServer sobe o servidor HTTP e bloqueia até SIGINT/SIGTERM
func StartServer(cfg *config.Config, handlers *Handlers, services *Services) {
	r := router.Setup(
		handlers.Auth,
		handlers.Setor,
		handlers.Health,
		handlers.Modalidade,
		handlers.Processo,
		services.Auth,
		cfg.Server.CORSOrigins,
		cfg.Server.Mode,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.APIPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printStartupBanner(cfg)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// 1. servidor HTTP: conclui as requisições em andamento
	logger.Infof("  → Stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("  HTTP server shutdown error: %v", err)
	} else {
		logger.Infof("  ✓ HTTP server stopped")
	}

	// 2. banco
	logger.Infof("  → Closing database...")
	if err := database.Close(); err != nil {
		logger.Warnf("  Database close error: %v", err)
	} else {
		logger.Infof("  ✓ Database closed")
	}

	// 3. Redis
	if pkgredis.IsEnabled() {
		logger.Infof("  → Closing Redis...")
		pkgredis.Close()
		logger.Infof("  ✓ Redis closed")
	}

	logger.Infof("Shutdown complete")
	logger.Sync()
}

func printStartupBanner(cfg *config.Config) {
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("Central de Compras - process tracking API")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("   • HTTP API      :%d (mode=%s)", cfg.Server.APIPort, cfg.Server.Mode)
	logger.Infof("   • Database      %s", cfg.Database.Driver)
	if cfg.Redis.Enabled {
		logger.Infof("   • Redis lock    %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}
	logger.Infof("   • Fallback phase %q, %d standard phases", cfg.Workflow.FallbackPhase, len(cfg.Workflow.StandardPhases))
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}
