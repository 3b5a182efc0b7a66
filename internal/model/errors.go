package model

import "errors"

// Tipos de erro devolvidos pelos serviços. Use errors.Is para classificar.
var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate value")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("operation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ErrPhaseNotInWorkflow fase fora do conjunto de fases da modalidade do processo
var ErrPhaseNotInWorkflow = &wrapped{msg: "fase não pertence à modalidade do processo", kind: ErrValidation}

type wrapped struct {
	msg  string
	kind error
}

func (e *wrapped) Error() string { return e.msg }

func (e *wrapped) Unwrap() error { return e.kind }
