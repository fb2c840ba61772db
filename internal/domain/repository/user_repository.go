package repository

import (
	"context"

	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios (credential store).
// Los métodos Find* devuelven (nil, nil) cuando no hay fila; solo consideran usuarios activos.
type UserRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	FindActiveByEmailOrCPF(ctx context.Context, email, cpf string) (*entity.User, error)
	FindActiveByID(ctx context.Context, id int64) (*entity.User, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// Create asigna ID y timestamps generados por la base.
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, user *entity.User) error
}
