package repository

import (
	"context"

	"github.com/cecomp/central-compras/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.Usuario) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.Usuario, error) {
	var user model.Usuario
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	var user model.Usuario
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
