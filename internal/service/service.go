// Package service reexporta os serviços organizados em subpacotes
package service

import (
	authService "github.com/cecomp/central-compras/internal/service/auth"
	processoService "github.com/cecomp/central-compras/internal/service/processo"
	systemService "github.com/cecomp/central-compras/internal/service/system"
	workflowService "github.com/cecomp/central-compras/internal/service/workflow"
)

// Auth
type AuthService = authService.AuthService
type Claims = authService.Claims

var NewAuthService = authService.NewAuthService
var HashPassword = authService.HashPassword

// Modalidades
type TemplateService = workflowService.TemplateService

var NewTemplateService = workflowService.NewTemplateService
var BuildSequence = workflowService.BuildSequence

// Processos
type ProcessoService = processoService.ProcessoService

var NewProcessoService = processoService.NewProcessoService

// Sistema
type SeedService = systemService.SeedService

var NewSeedService = systemService.NewSeedService
