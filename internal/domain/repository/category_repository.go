package repository

import (
	"context"

	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category. Solo expone categorías activas.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Category, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	SoftDelete(ctx context.Context, category *entity.Category) error
}
