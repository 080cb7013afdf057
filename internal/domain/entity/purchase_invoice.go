package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoice factura de compra a proveedor.
type PurchaseInvoice struct {
	ID         string
	Supplier   string
	Number     string
	Date       time.Time
	GrandTotal decimal.Decimal
	UserID     string
	CreatedAt  time.Time
	Lines      []*PurchaseInvoiceLine
}

// PurchaseInvoiceLine línea de compra: cada una genera un movimiento PURCHASE.
type PurchaseInvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
	Subtotal  decimal.Decimal
}

// QuantityOf suma las cantidades facturadas de un producto y su costo unitario ponderado.
func (inv *PurchaseInvoice) QuantityOf(productID string) (int64, decimal.Decimal) {
	var qty int64
	total := decimal.Zero
	for _, l := range inv.Lines {
		if l.ProductID == productID {
			qty += l.Quantity
			total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
		}
	}
	if qty == 0 {
		return 0, decimal.Zero
	}
	return qty, total.Div(decimal.NewFromInt(qty))
}
