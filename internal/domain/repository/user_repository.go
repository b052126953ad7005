package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios (DIP).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// RoleVisibilityRepository registros de visibilidad por usuario o por rol.
// Los Get devuelven (nil, nil) cuando no existe registro.
type RoleVisibilityRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.RoleVisibility, error)
	GetByRoleID(ctx context.Context, roleID string) (*entity.RoleVisibility, error)
	UpsertForUser(ctx context.Context, rv *entity.RoleVisibility) error
}
