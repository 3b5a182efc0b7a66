package model

import "time"

// Setor unidade organizacional dona de processos e de usuários
type Setor struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Nome      string    `json:"nome" gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Setor) TableName() string {
	return "setores"
}

type CreateSetorRequest struct {
	Nome string `json:"nome" binding:"required"`
}
