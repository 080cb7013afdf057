package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice factura de venta a cliente.
type SalesInvoice struct {
	ID         string
	Customer   string
	Number     string
	Date       time.Time
	GrandTotal decimal.Decimal
	UserID     string
	CreatedAt  time.Time
	Lines      []*SalesInvoiceLine
}

// SalesInvoiceLine línea de venta: cada una genera un movimiento SALE negativo.
type SalesInvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// QuantityOf suma las cantidades vendidas de un producto en la factura.
func (inv *SalesInvoice) QuantityOf(productID string) int64 {
	var qty int64
	for _, l := range inv.Lines {
		if l.ProductID == productID {
			qty += l.Quantity
		}
	}
	return qty
}
