package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/cecomp/central-compras/internal/service/auth"
	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/google/uuid"
)

// SeedService cria os dados mínimos para o primeiro acesso: setores e o administrador padrão.
// Pode rodar a cada subida; só cria o que ainda não existe.
type SeedService struct {
	setores *repository.SetorRepository
	users   *repository.UserRepository
	cfg     config.SeedConfig
}

func NewSeedService(setores *repository.SetorRepository, users *repository.UserRepository, cfg config.SeedConfig) *SeedService {
	return &SeedService{setores: setores, users: users, cfg: cfg}
}

// Run executa o seed
func (s *SeedService) Run(ctx context.Context) error {
	created := 0
	var adminSector *model.Setor

	for _, nome := range s.sectorNames() {
		setor, isNew, err := s.ensureSector(ctx, nome)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}
		if nome == strings.TrimSpace(s.cfg.AdminSector) {
			adminSector = setor
		}
	}

	adminCreated, err := s.ensureAdmin(ctx, adminSector)
	if err != nil {
		return err
	}

	if created > 0 || adminCreated {
		logger.Infof("Seed completed: sectors created=%d, admin created=%t", created, adminCreated)
	}
	return nil
}

// sectorNames setor do administrador primeiro, sem repetições
func (s *SeedService) sectorNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range append([]string{s.cfg.AdminSector}, s.cfg.Sectors...) {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

func (s *SeedService) ensureSector(ctx context.Context, nome string) (*model.Setor, bool, error) {
	setor, err := s.setores.FindByNome(ctx, nome)
	if err == nil {
		return setor, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, fmt.Errorf("failed to query sector %s: %w", nome, err)
	}

	setor = &model.Setor{ID: uuid.New().String(), Nome: nome}
	if err := s.setores.Create(ctx, setor); err != nil {
		return nil, false, fmt.Errorf("failed to create sector %s: %w", nome, err)
	}
	return setor, true, nil
}

func (s *SeedService) ensureAdmin(ctx context.Context, sector *model.Setor) (bool, error) {
	if _, err := s.users.FindByLogin(ctx, s.cfg.AdminLogin); err == nil {
		return false, nil
	} else if !repository.IsNotFound(err) {
		return false, fmt.Errorf("failed to query admin user: %w", err)
	}

	hash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.Usuario{
		ID:      uuid.New().String(),
		Nome:    s.cfg.AdminName,
		Login:   s.cfg.AdminLogin,
		Senha:   hash,
		IsAdmin: true,
	}
	if sector != nil {
		admin.SetorID = sector.ID
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Warnf("Default administrator %q created; change its password", s.cfg.AdminLogin)
	return true, nil
}
