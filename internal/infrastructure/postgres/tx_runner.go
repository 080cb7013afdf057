package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxStarter
}

// NewTxRunner construye el runner con el pool (o pgxmock en pruebas).
func NewTxRunner(db TxStarter) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante error (o panic) de fn no queda ninguna fila escrita.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	repos := inventory.Repos{
		Movements:        NewMovementLogRepository(tx),
		Products:         NewProductRepository(tx),
		PurchaseInvoices: NewPurchaseInvoiceRepository(tx),
		SalesInvoices:    NewSalesInvoiceRepository(tx),
		PurchaseReturns:  NewPurchaseReturnRepository(tx),
		SalesReturns:     NewSalesReturnRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	// un Commit fallido ya revierte en el servidor
	committed = true
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
