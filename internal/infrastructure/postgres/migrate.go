package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Migrate aplica el esquema completo. Las sentencias son idempotentes
// (CREATE ... IF NOT EXISTS), por lo que es seguro ejecutarlo en cada arranque
// de la herramienta de migración.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
