package router

import (
	"net/http"

	"github.com/cecomp/central-compras/internal/api/handler"
	"github.com/cecomp/central-compras/internal/api/middleware"
	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	authHandler *handler.AuthHandler,
	setorHandler *handler.SetorHandler,
	healthHandler *handler.HealthHandler,
	modalidadeHandler *handler.ModalidadeHandler,
	processoHandler *handler.ProcessoHandler,
	authService *service.AuthService,
	corsOrigins []string,
	mode string,
) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RecoveryMiddleware())
	if mode != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(corsOrigins))

	api := r.Group("/api")

	// rotas públicas
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/setores", setorHandler.ListSetores)

		modalidades := authed.Group("/modalidades")
		{
			modalidades.GET("", modalidadeHandler.ListModalidades)
			modalidades.GET("/fases-padrao", modalidadeHandler.StandardPhases)
			modalidades.GET("/:id", modalidadeHandler.GetModalidade)
			modalidades.GET("/:id/fases", modalidadeHandler.ListFases)
		}

		processos := authed.Group("/processos")
		{
			processos.GET("", processoHandler.ListProcessos)
			processos.POST("", processoHandler.CreateProcesso)
			processos.GET("/:id", processoHandler.GetProcesso)
			processos.GET("/:id/fases", processoHandler.ListFases)
			processos.PUT("/:id/fase", processoHandler.UpdateFase)
			processos.GET("/:id/movimentacoes", processoHandler.ListMovimentacoes)
		}

		// administração
		admin := authed.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/setores", setorHandler.CreateSetor)
			admin.POST("/modalidades", modalidadeHandler.CreateModalidade)
			admin.DELETE("/modalidades/:id", modalidadeHandler.DeleteModalidade)
		}
	}

	// Prometheus Metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", healthHandler.Health)
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.Error(http.StatusNotFound, "recurso não encontrado"))
	})

	return r
}
