package model

import (
	"time"
)

// Usuario usuário da plataforma (administrador ou operador)
type Usuario struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Nome      string    `json:"nome" gorm:"type:varchar(100);not null"`
	Login     string    `json:"login" gorm:"type:varchar(50);uniqueIndex;not null"`
	Senha     string    `json:"-" gorm:"type:varchar(255);not null"` // hash bcrypt
	IsAdmin   bool      `json:"is_admin" gorm:"type:boolean;default:false"`
	SetorID   string    `json:"setor_id" gorm:"type:varchar(36);index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// Actor quem está executando a operação. Vem do token, nunca de estado global.
type Actor struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	SectorID string `json:"sector_id"`
	IsAdmin  bool   `json:"is_admin"`
}

// CanAccessSector administradores veem todos os setores; operadores só o próprio
func (a Actor) CanAccessSector(sectorID string) bool {
	return a.IsAdmin || (a.SectorID != "" && a.SectorID == sectorID)
}

type LoginRequest struct {
	Login string `json:"login" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Usuario   *Usuario  `json:"usuario"`
}
