package entity

import "time"

// Clases de devolución.
const (
	ReturnKindPurchase = "purchase" // devolución al proveedor (sale stock)
	ReturnKindSales    = "sales"    // devolución del cliente (entra stock)
)

// ProductReturn devolución de un producto contra una factura de compra o de venta.
type ProductReturn struct {
	ID        string
	Kind      string
	InvoiceID string
	ProductID string
	Quantity  int64
	Note      string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
