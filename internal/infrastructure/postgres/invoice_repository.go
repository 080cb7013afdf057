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

var (
	_ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)
	_ repository.SalesInvoiceRepository    = (*SalesInvoiceRepo)(nil)
)

// PurchaseInvoiceRepo facturas de compra (cabecera + líneas) sobre PostgreSQL.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. Debe ir dentro de una tx para ser atómico.
func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_invoices (id, supplier, number, date, grand_total, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.Supplier, inv.Number, inv.Date, inv.GrandTotal, nullIfEmpty(inv.UserID), inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura de compra %s ya existe", domain.ErrConflict, inv.Number)
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	for i, l := range inv.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_invoice_lines (id, invoice_id, line_no, product_id, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, inv.ID, i+1, l.ProductID, l.Quantity, l.UnitCost, l.Subtotal,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			return fmt.Errorf("insert purchase invoice line: %w", err)
		}
	}
	return nil
}

// GetByID factura con sus líneas; nil, nil si no existe.
func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	err := r.q.QueryRow(ctx, `
		SELECT id, supplier, number, date, grand_total, COALESCE(user_id, ''), created_at
		FROM purchase_invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.Supplier, &inv.Number, &inv.Date, &inv.GrandTotal, &inv.UserID, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_invoice_lines WHERE invoice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseInvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitCost, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete elimina la factura (las líneas caen por ON DELETE CASCADE).
func (r *PurchaseInvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_invoices WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: factura de compra %s con devoluciones", domain.ErrConflict, id)
		}
		return fmt.Errorf("delete purchase invoice: %w", err)
	}
	return nil
}

// SalesInvoiceRepo facturas de venta (cabecera + líneas) sobre PostgreSQL.
type SalesInvoiceRepo struct {
	q Querier
}

// NewSalesInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesInvoiceRepository(q Querier) *SalesInvoiceRepo {
	return &SalesInvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. Debe ir dentro de una tx para ser atómico.
func (r *SalesInvoiceRepo) Create(ctx context.Context, inv *entity.SalesInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_invoices (id, customer, number, date, grand_total, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.Customer, inv.Number, inv.Date, inv.GrandTotal, nullIfEmpty(inv.UserID), inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura de venta %s ya existe", domain.ErrConflict, inv.Number)
		}
		return fmt.Errorf("insert sales invoice: %w", err)
	}
	for i, l := range inv.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_invoice_lines (id, invoice_id, line_no, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, inv.ID, i+1, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			return fmt.Errorf("insert sales invoice line: %w", err)
		}
	}
	return nil
}

// GetByID factura con sus líneas; nil, nil si no existe.
func (r *SalesInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.SalesInvoice, error) {
	var inv entity.SalesInvoice
	err := r.q.QueryRow(ctx, `
		SELECT id, customer, number, date, grand_total, COALESCE(user_id, ''), created_at
		FROM sales_invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.Customer, &inv.Number, &inv.Date, &inv.GrandTotal, &inv.UserID, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales invoice: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM sales_invoice_lines WHERE invoice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list sales invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesInvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sales invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Delete elimina la factura (las líneas caen por ON DELETE CASCADE).
func (r *SalesInvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_invoices WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: factura de venta %s con devoluciones", domain.ErrConflict, id)
		}
		return fmt.Errorf("delete sales invoice: %w", err)
	}
	return nil
}
