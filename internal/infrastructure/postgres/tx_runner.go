package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supermercado-api/internal/application/sales"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// Beginner lo implementan *pgxpool.Pool y pgxmock.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// run inicia una transacción, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales ejecuta fn con un SaleRepository atado a la transacción: cabecera y líneas se confirman juntas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx))
	})
}
