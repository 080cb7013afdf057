package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones de una clase. Cada clase tiene su tabla (FK a su tipo de factura).
type ReturnRepo struct {
	q     Querier
	kind  string
	table string
}

// NewPurchaseReturnRepository devoluciones a proveedor (tabla purchase_returns).
func NewPurchaseReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q, kind: entity.ReturnKindPurchase, table: "purchase_returns"}
}

// NewSalesReturnRepository devoluciones de cliente (tabla sales_returns).
func NewSalesReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q, kind: entity.ReturnKindSales, table: "sales_returns"}
}

func (r *ReturnRepo) columns() string {
	return `id, invoice_id, product_id, quantity, note, COALESCE(user_id, ''), created_at, updated_at`
}

// Create persiste la devolución.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	query := `INSERT INTO ` + r.table + ` (id, invoice_id, product_id, quantity, note, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.InvoiceID, ret.ProductID, ret.Quantity, ret.Note, nullIfEmpty(ret.UserID), ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, ret.InvoiceID)
		}
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
	ret.Kind = r.kind
	return nil
}

// GetByID devolución; nil, nil si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ProductReturn, error) {
	return r.getOne(ctx, `SELECT `+r.columns()+` FROM `+r.table+` WHERE id = $1`, id)
}

// LockForUpdate devolución con su fila bloqueada (SELECT FOR UPDATE); nil, nil si no existe.
func (r *ReturnRepo) LockForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error) {
	return r.getOne(ctx, `SELECT `+r.columns()+` FROM `+r.table+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReturnRepo) getOne(ctx context.Context, query, id string) (*entity.ProductReturn, error) {
	ret := entity.ProductReturn{Kind: r.kind}
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ret.ID, &ret.InvoiceID, &ret.ProductID, &ret.Quantity, &ret.Note, &ret.UserID, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.table, err)
	}
	return &ret, nil
}

// UpdateQuantity actualiza cantidad, nota y fecha. ErrNotFound si la fila no existe.
func (r *ReturnRepo) UpdateQuantity(ctx context.Context, ret *entity.ProductReturn) error {
	cmd, err := r.q.Exec(ctx, `UPDATE `+r.table+` SET quantity = $2, note = $3, updated_at = $4 WHERE id = $1`,
		ret.ID, ret.Quantity, ret.Note, ret.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: devolución %s", domain.ErrNotFound, ret.ID)
	}
	return nil
}

// Delete elimina la devolución.
func (r *ReturnRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return nil
}

// ListByInvoice devoluciones de una factura, más antiguas primero.
func (r *ReturnRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.ProductReturn, error) {
	rows, err := r.q.Query(ctx, `SELECT `+r.columns()+` FROM `+r.table+`
		WHERE invoice_id = $1 ORDER BY created_at, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()
	var list []*entity.ProductReturn
	for rows.Next() {
		ret := entity.ProductReturn{Kind: r.kind}
		if err := rows.Scan(&ret.ID, &ret.InvoiceID, &ret.ProductID, &ret.Quantity, &ret.Note, &ret.UserID, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}
