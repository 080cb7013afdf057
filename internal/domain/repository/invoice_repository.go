package repository

import (
	"context"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// PurchaseInvoiceRepository persiste cabecera y líneas de facturas de compra.
type PurchaseInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	Delete(ctx context.Context, id string) error
}

// SalesInvoiceRepository persiste cabecera y líneas de facturas de venta.
type SalesInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SalesInvoice) error
	GetByID(ctx context.Context, id string) (*entity.SalesInvoice, error)
	Delete(ctx context.Context, id string) error
}
