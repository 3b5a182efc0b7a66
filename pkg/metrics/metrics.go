package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API

	// APIRequestsTotal total de requisições
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration duração das requisições
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Domínio

	// WorkflowsCreated modalidades cadastradas
	WorkflowsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cecomp_workflows_created_total",
			Help: "Total number of workflow templates created",
		},
	)

	// ProcessesCreated processos cadastrados, por resultado (ok, validation, duplicate, not_found, error)
	ProcessesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cecomp_processes_created_total",
			Help: "Process creation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// PhaseTransitions trocas de fase, por resultado
	PhaseTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cecomp_phase_transitions_total",
			Help: "Phase transition attempts by outcome",
		},
		[]string{"outcome"},
	)
)
