package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema DDL idempotente de las tablas del servicio.
//
//go:embed schema.sql
var Schema string

// ApplySchema crea tablas e índices que falten. Sin argumentos pgx usa el protocolo simple,
// que acepta varias sentencias en una sola llamada.
func ApplySchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
