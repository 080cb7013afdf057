package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInventoryResponse valoración de un producto (GET /api/inventory/product/:id).
type ProductInventoryResponse struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	CurrentQuantity  int64           `json:"current_quantity"`
	AverageCost      decimal.Decimal `json:"average_cost"`
	LastCost         decimal.Decimal `json:"last_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LastMovementDate time.Time       `json:"last_movement_date"`
	MovementCount    int             `json:"movement_count"`
	AsOf             *time.Time      `json:"as_of,omitempty"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	ReferenceTable string          `json:"reference_table"`
	ReferenceID    string          `json:"reference_id"`
	ReversalOf     string          `json:"reversal_of,omitempty"`
	Note           string          `json:"note,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementFilter filtros de GET /api/inventory/movements. Vacíos = sin filtro.
type MovementFilter struct {
	ProductID      string `query:"product_id"`
	ReferenceTable string `query:"reference_table" validate:"omitempty,oneof=purchase_invoice sales_invoice purchase_return sales_return adjustment"`
	ReferenceID    string `query:"reference_id"`
}

// AdjustInventoryRequest body para POST /api/inventory/adjust.
type AdjustInventoryRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	NewQuantity *int64 `json:"new_quantity" validate:"required,gte=0"`
	Note        string `json:"note" validate:"max=500"`
}

// AdjustInventoryResponse resultado del ajuste. Movement es nil cuando no hubo cambio.
type AdjustInventoryResponse struct {
	ProductID        string            `json:"product_id"`
	Applied          bool              `json:"applied"`
	PreviousQuantity int64             `json:"previous_quantity"`
	NewQuantity      int64             `json:"new_quantity"`
	Delta            int64             `json:"delta"`
	Movement         *MovementResponse `json:"movement,omitempty"`
}

// Estados de un ítem del reporte.
const (
	StockStatusOK         = "ok"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// InventoryReportItem línea del reporte de inventario.
type InventoryReportItem struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	CurrentQuantity  int64           `json:"current_quantity"`
	AverageCost      decimal.Decimal `json:"average_cost"`
	LastCost         decimal.Decimal `json:"last_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LastMovementDate time.Time       `json:"last_movement_date"`
	Status           string          `json:"status"`
}

// InventoryReportResponse reporte completo (GET /api/inventory/report).
type InventoryReportResponse struct {
	Items               []InventoryReportItem `json:"items"`
	TotalInventoryValue decimal.Decimal       `json:"total_inventory_value"`
	TotalProducts       int                   `json:"total_products"`
	LowStockItems       int                   `json:"low_stock_items"`
	OutOfStockItems     int                   `json:"out_of_stock_items"`
	LowStockThreshold   int64                 `json:"low_stock_threshold"`
	GeneratedAt         time.Time             `json:"generated_at"`
}
