package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Processo processo de compra acompanhado pelo sistema.
// FaseAtual é uma cópia do nome da fase, não uma referência: reestruturar
// as fases de uma modalidade não altera a fase exibida de processos antigos.
type Processo struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	NumeroSEI       string          `gorm:"column:numero_sei;type:varchar(50);uniqueIndex;not null" json:"numero_sei"`
	Objeto          string          `gorm:"type:text" json:"objeto"`
	ValorPrevisto   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"valor_previsto"`
	DataAutorizacao time.Time       `gorm:"not null" json:"data_autorizacao"`
	ModalidadeID    uint            `gorm:"index;not null" json:"modalidade_id"`
	FaseAtual       string          `gorm:"type:varchar(100);not null" json:"fase_atual"`
	SetorOrigemID   string          `gorm:"type:varchar(36);index;not null" json:"setor_origem_id"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Processo) TableName() string {
	return "processos"
}

// ProcessoView modelo de leitura usado nas listagens
type ProcessoView struct {
	Processo
	SetorNome      string `json:"setor_nome"`
	ModalidadeNome string `json:"modalidade_nome"`
}

// ProcessoMovimentacao registro de cada troca de fase
type ProcessoMovimentacao struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProcessoID   uint      `gorm:"index;not null" json:"processo_id"`
	FaseAnterior string    `gorm:"type:varchar(100)" json:"fase_anterior"`
	FaseNova     string    `gorm:"type:varchar(100);not null" json:"fase_nova"`
	UsuarioID    string    `gorm:"type:varchar(36)" json:"usuario_id"`
	UsuarioNome  string    `gorm:"type:varchar(100)" json:"usuario_nome"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProcessoMovimentacao) TableName() string {
	return "processo_movimentacoes"
}

// CreateProcessoRequest payload de cadastro de processo
type CreateProcessoRequest struct {
	NumeroSEI     string          `json:"numero_sei"`
	Objeto        string          `json:"objeto"`
	ValorPrevisto decimal.Decimal `json:"valor_previsto"`
	ModalidadeID  uint            `json:"modalidade_id" binding:"required"`
	// SetorOrigemID só é respeitado para administradores
	SetorOrigemID string `json:"setor_origem_id"`
}

// TransitionRequest troca de fase, com atualização opcional de objeto e valor
type TransitionRequest struct {
	FaseAtual     string           `json:"fase_atual" binding:"required"`
	Objeto        *string          `json:"objeto"`
	ValorPrevisto *decimal.Decimal `json:"valor_previsto"`
}

// ProcessoFilter filtros da listagem
type ProcessoFilter struct {
	ModalidadeID uint
	FaseAtual    string
	Keyword      string
	Skip         int
	Limit        int
}
