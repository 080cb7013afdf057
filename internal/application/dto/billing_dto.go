package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoiceItemRequest línea de compra: producto, cantidad y costo unitario.
type PurchaseInvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseInvoiceRequest body para POST /api/purchase-invoices.
type CreatePurchaseInvoiceRequest struct {
	Supplier string                       `json:"supplier" validate:"required,max=200"`
	Number   string                       `json:"number" validate:"max=50"`
	Date     *time.Time                   `json:"date,omitempty"`
	Items    []PurchaseInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseInvoiceLineResponse línea de compra en respuestas.
type PurchaseInvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseInvoiceResponse factura de compra con detalle.
type PurchaseInvoiceResponse struct {
	ID         string                        `json:"id"`
	Supplier   string                        `json:"supplier"`
	Number     string                        `json:"number,omitempty"`
	Date       time.Time                     `json:"date"`
	GrandTotal decimal.Decimal               `json:"grand_total"`
	UserID     string                        `json:"user_id,omitempty"`
	CreatedAt  time.Time                     `json:"created_at"`
	Lines      []PurchaseInvoiceLineResponse `json:"lines"`
}

// SalesInvoiceItemRequest línea de venta. UnitPrice en cero toma el precio del producto.
type SalesInvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSalesInvoiceRequest body para POST /api/sales-invoices.
type CreateSalesInvoiceRequest struct {
	Customer string                    `json:"customer" validate:"required,max=200"`
	Number   string                    `json:"number" validate:"max=50"`
	Date     *time.Time                `json:"date,omitempty"`
	Items    []SalesInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SalesInvoiceLineResponse línea de venta en respuestas.
type SalesInvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesInvoiceResponse factura de venta con detalle.
type SalesInvoiceResponse struct {
	ID         string                     `json:"id"`
	Customer   string                     `json:"customer"`
	Number     string                     `json:"number,omitempty"`
	Date       time.Time                  `json:"date"`
	GrandTotal decimal.Decimal            `json:"grand_total"`
	UserID     string                     `json:"user_id,omitempty"`
	CreatedAt  time.Time                  `json:"created_at"`
	Lines      []SalesInvoiceLineResponse `json:"lines"`
}
