package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/supermercado-api/internal/domain"
)

// Querier lo implementan *pgxpool.Pool, pgx.Tx y pgxmock; los repositorios sirven dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// activeOnly es el único predicado de baja lógica; todas las consultas "activas" lo usan.
func activeOnly(alias string) string {
	if alias == "" {
		return "deleted_at IS NULL"
	}
	return alias + ".deleted_at IS NULL"
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolation
}

// writeError traduce errores de escritura a errores de dominio.
func writeError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// noRows convierte pgx.ErrNoRows en (nil, nil), convención de los repositorios.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
