package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cecomp/central-compras/internal/model"
	"github.com/cecomp/central-compras/internal/repository"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "central-compras"

// Claims JWT Claims
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	SectorID string `json:"sectorId"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Actor ator das operações de domínio a partir do token
func (c *Claims) Actor() model.Actor {
	return model.Actor{
		UserID:   c.UserID,
		UserName: c.Username,
		SectorID: c.SectorID,
		IsAdmin:  c.IsAdmin,
	}
}

type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(repo *repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

var errInvalidCredentials = fmt.Errorf("%w: login ou senha inválidos", model.ErrUnauthorized)

// Login autentica por login e senha e emite o token
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.authenticateWithPassword(ctx, strings.TrimSpace(req.Login), req.Senha)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Infof("User logged in: login=%s, admin=%t", user.Login, user.IsAdmin)
	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Usuario:   user,
	}, nil
}

func (s *AuthService) authenticateWithPassword(ctx context.Context, login, password string) (*model.Usuario, error) {
	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return user, nil
}

// GenerateToken gera o JWT do usuário
func (s *AuthService) GenerateToken(user *model.Usuario) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Nome,
		SectorID: user.SetorID,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   user.Login,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	return signed, expiresAt, err
}

// ValidateToken valida o JWT
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: token inválido", model.ErrUnauthorized)
}

// GetUserByID usuário atual
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.Usuario, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: usuário %s", model.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return user, nil
}

// HashPassword hash bcrypt da senha
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
