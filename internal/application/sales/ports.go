package sales

import (
	"context"

	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un SaleRepository atado a esa tx.
// Si fn devuelve error no queda ni cabecera ni líneas.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}
