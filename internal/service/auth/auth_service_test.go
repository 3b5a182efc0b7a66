package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/cecomp/central-compras/pkg/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := database.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	hash, err := HashPassword("segredo")
	require.NoError(t, err)
	repo := repository.NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		ID: "u1", Nome: "Ana", Login: "ana", Senha: hash, SetorID: "s1",
	}))
	return NewAuthService(repo, "test-secret", time.Hour)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     model.LoginRequest
		wantErr bool
	}{
		{"credenciais válidas", model.LoginRequest{Login: "ana", Senha: "segredo"}, false},
		{"login com espaços", model.LoginRequest{Login: " ana ", Senha: "segredo"}, false},
		{"senha errada", model.LoginRequest{Login: "ana", Senha: "errada"}, true},
		{"usuário inexistente", model.LoginRequest{Login: "ze", Senha: "segredo"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, "u1", resp.Usuario.ID)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	token, expiresAt, err := svc.GenerateToken(&model.Usuario{ID: "u7", Nome: "Carla", Login: "carla", SetorID: "s2", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.Actor{UserID: "u7", UserName: "Carla", SectorID: "s2", IsAdmin: true}, claims.Actor())
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestAuthService(t)
	other := NewAuthService(nil, "outra-chave", time.Hour)

	foreign, _, err := other.GenerateToken(&model.Usuario{ID: "u1"})
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    issuer,
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"assinatura de outra chave": foreign,
		"expirado":                  expiredToken,
		"lixo":                      "abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	svc := newTestAuthService(t)
	u, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Login)

	_, err = svc.GetUserByID(context.Background(), "x")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
