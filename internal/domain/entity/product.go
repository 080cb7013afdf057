package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la vista de catálogo que consume el libro de inventario (solo lectura).
// El stock no vive aquí: se deriva siempre de los movimientos.
type Product struct {
	ID              string
	SKU             string
	Name            string
	Price           decimal.Decimal // precio de venta por defecto
	MinSellingPrice decimal.Decimal // piso de precio para facturas de venta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
