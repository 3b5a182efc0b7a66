package main

import (
	"flag"
	"log"

	"github.com/cecomp/central-compras/internal/app"
)

// @title           Central de Compras API
// @version         1.0
// @description     Acompanhamento de processos de compra por modalidade e fase
// @BasePath        /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	configPath := flag.String("config", "", "caminho do config.yaml (padrão: $CECOMP_CONFIG ou config/config.yaml)")
	flag.Parse()

	application, err := app.Initialize(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.StartServer(application.Config, application.Handlers, application.Services)
}
