package repository

import (
	"context"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// UserAccountRepository administración de usuarios de la empresa (solo admin).
type UserAccountRepository interface {
	UserRepository
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	UpdateStatus(ctx context.Context, user *entity.User) error
}
