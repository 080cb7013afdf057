package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

const movementColumns = `id, product_id, type, quantity, unit_cost, reference_table, reference_id,
	COALESCE(reversal_of, ''), note, COALESCE(user_id, ''), created_at`

// MovementLogRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// La tabla solo recibe INSERT; Delete queda para mantenimiento auditado.
type MovementLogRepo struct {
	q Querier
}

// NewMovementLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementLogRepository(q Querier) *MovementLogRepo {
	return &MovementLogRepo{q: q}
}

// Append inserta un movimiento.
func (r *MovementLogRepo) Append(ctx context.Context, m *entity.MovementLog) error {
	query := `
		INSERT INTO movement_logs (id, product_id, type, quantity, unit_cost, reference_table, reference_id, reversal_of, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.UnitCost, m.ReferenceTable, m.ReferenceID,
		nullIfEmpty(m.ReversalOf), m.Note, nullIfEmpty(m.UserID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// FindByProduct movimientos del producto, más reciente primero (usa idx_movement_logs_product).
func (r *MovementLogRepo) FindByProduct(ctx context.Context, productID string) ([]*entity.MovementLog, error) {
	query := `SELECT ` + movementColumns + `
		FROM movement_logs WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return scanMovements(rows)
}

// FindAll todos los movimientos, más reciente primero.
func (r *MovementLogRepo) FindAll(ctx context.Context) ([]*entity.MovementLog, error) {
	query := `SELECT ` + movementColumns + `
		FROM movement_logs ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// FindByReference movimientos de un documento (usa idx_movement_logs_reference).
func (r *MovementLogRepo) FindByReference(ctx context.Context, table, id string) ([]*entity.MovementLog, error) {
	query := `SELECT ` + movementColumns + `
		FROM movement_logs WHERE reference_table = $1 AND reference_id = $2
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, table, id)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	return scanMovements(rows)
}

// Delete borra un movimiento. Ningún caso de uso lo llama.
func (r *MovementLogRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movement_logs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]*entity.MovementLog, error) {
	defer rows.Close()
	var list []*entity.MovementLog
	for rows.Next() {
		var m entity.MovementLog
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.ReferenceTable, &m.ReferenceID, &m.ReversalOf, &m.Note, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
