package repository

import (
	"context"

	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera y completa ID y timestamps.
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateItems inserta todas las líneas en una sola sentencia y devuelve sus IDs.
	CreateItems(ctx context.Context, saleID int64, productIDs []int64) ([]entity.SaleItem, error)
	// Lines devuelve las líneas de una venta unidas a producto y categoría, ordenadas por ID.
	Lines(ctx context.Context, saleID int64) ([]entity.SaleLine, error)
	// LinesBySaleIDs igual que Lines para varias ventas en una sola consulta.
	LinesBySaleIDs(ctx context.Context, saleIDs []int64) (map[int64][]entity.SaleLine, error)
	// GetByID incluye ventas dadas de baja.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	ListActive(ctx context.Context) ([]*entity.Sale, error)
}
