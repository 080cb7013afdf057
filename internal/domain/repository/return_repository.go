package repository

import (
	"context"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// ReturnRepository persiste devoluciones de una sola clase (compra o venta).
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.ProductReturn) error
	GetByID(ctx context.Context, id string) (*entity.ProductReturn, error)
	// LockForUpdate relee la devolución bloqueando su fila hasta el fin de la transacción.
	LockForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error)
	UpdateQuantity(ctx context.Context, ret *entity.ProductReturn) error
	Delete(ctx context.Context, id string) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.ProductReturn, error)
}
