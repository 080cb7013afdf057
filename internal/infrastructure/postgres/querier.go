package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo que necesitan los repositorios: lo cumplen *pgxpool.Pool, pgx.Tx y pgxmock.
// Pasar el pool para lecturas sueltas y la tx dentro de una unidad de trabajo.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter inicia transacciones (pool real o pgxmock).
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
