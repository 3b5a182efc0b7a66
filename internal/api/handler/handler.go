// Package handler reexporta os handlers organizados em subpacotes
package handler

import (
	authHandler "github.com/cecomp/central-compras/internal/api/handler/auth"
	processoHandler "github.com/cecomp/central-compras/internal/api/handler/processo"
	systemHandler "github.com/cecomp/central-compras/internal/api/handler/system"
	workflowHandler "github.com/cecomp/central-compras/internal/api/handler/workflow"
)

// Auth handlers
type AuthHandler = authHandler.AuthHandler

var NewAuthHandler = authHandler.NewAuthHandler

// System handlers
type SetorHandler = systemHandler.SetorHandler
type HealthHandler = systemHandler.HealthHandler

var NewSetorHandler = systemHandler.NewSetorHandler
var NewHealthHandler = systemHandler.NewHealthHandler

// Workflow handlers
type ModalidadeHandler = workflowHandler.ModalidadeHandler

var NewModalidadeHandler = workflowHandler.NewModalidadeHandler

// Processo handlers
type ProcessoHandler = processoHandler.ProcessoHandler

var NewProcessoHandler = processoHandler.NewProcessoHandler
