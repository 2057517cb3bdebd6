// Package postgres implementa los puertos de persistencia sobre PostgreSQL
// con pgx/v5. Todos los repos operan sobre un Querier, que satisfacen tanto
// el pool como una transacción: el TxRunner ata repos a la tx para que una
// operación del motor aterrice completa o no aterrice.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae pool y transacción: lo satisfacen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
