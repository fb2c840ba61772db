package repository

import (
	"context"

	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product. Las lecturas llenan CategoryDescription.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindActiveByID(ctx context.Context, id int64) (*entity.Product, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, product *entity.Product) error
}
