package model

import "time"

// Modalidade modelo de fluxo: sequência ordenada de fases que um processo percorre
type Modalidade struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nome      string         `gorm:"type:varchar(100);not null" json:"nome"`
	CreatedAt time.Time      `json:"created_at"`
	Fases     []FaseTemplate `gorm:"foreignKey:ModalidadeID;constraint:OnDelete:CASCADE" json:"fases"`
}

func (Modalidade) TableName() string {
	return "modalidades"
}

// FaseTemplate uma fase da modalidade. Ordem começa em 1 e é única dentro da modalidade.
type FaseTemplate struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ModalidadeID uint   `gorm:"not null;uniqueIndex:uk_modalidade_ordem" json:"modalidade_id"`
	Nome         string `gorm:"type:varchar(100);not null" json:"nome"`
	Ordem        int    `gorm:"not null;uniqueIndex:uk_modalidade_ordem" json:"ordem"`
}

func (FaseTemplate) TableName() string {
	return "fases_template"
}

// PhaseNames nomes das fases na ordem em que estão carregadas
func (m *Modalidade) PhaseNames() []string {
	names := make([]string, 0, len(m.Fases))
	for _, f := range m.Fases {
		names = append(names, f.Nome)
	}
	return names
}

// CreateModalidadeRequest payload de cadastro de modalidade.
// FasesPadrao já vem na ordem escolhida; FasesExtras é texto livre, uma fase por linha.
type CreateModalidadeRequest struct {
	Nome        string   `json:"nome"`
	FasesPadrao []string `json:"fases_padrao"`
	FasesExtras string   `json:"fases_extras"`
}
