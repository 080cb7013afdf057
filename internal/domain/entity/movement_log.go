package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento. Son etiquetas de auditoría: el signo lo lleva Quantity.
const (
	MovementTypePurchase       = "PURCHASE"
	MovementTypeSale           = "SALE"
	MovementTypeReturnSale     = "RETURN_SALE"
	MovementTypeReturnPurchase = "RETURN_PURCHASE"
	MovementTypeAdjust         = "ADJUST"
)

// Tablas de referencia (puntero informativo al documento de origen, sin FK).
const (
	ReferencePurchaseInvoice = "purchase_invoice"
	ReferenceSalesInvoice    = "sales_invoice"
	ReferencePurchaseReturn  = "purchase_return"
	ReferenceSalesReturn     = "sales_return"
	ReferenceAdjustment      = "adjustment"
)

// ValidMovementType indica si t es uno de los tipos conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeReturnSale, MovementTypeReturnPurchase, MovementTypeAdjust:
		return true
	}
	return false
}

// MovementLog es un movimiento inmutable del libro de inventario.
// Quantity es el delta con signo (positivo entra, negativo sale); el stock actual es la suma de todos.
type MovementLog struct {
	ID             string
	ProductID      string
	Type           string
	Quantity       int64
	UnitCost       decimal.Decimal // 0 cuando no aplica
	ReferenceTable string
	ReferenceID    string
	ReversalOf     string // ID del movimiento que compensa; vacío si no es compensación
	Note           string
	UserID         string
	CreatedAt      time.Time
}

// IsReversal indica si el movimiento es un asiento de compensación.
func (m *MovementLog) IsReversal() bool {
	return m.ReversalOf != ""
}

// Compensation construye el asiento que revierte m: mismo producto, misma referencia,
// cantidad negada y mismo costo. label vacío conserva el tipo original.
func (m *MovementLog) Compensation(label, userID, note string) *MovementLog {
	if label == "" {
		label = m.Type
	}
	return &MovementLog{
		ProductID:      m.ProductID,
		Type:           label,
		Quantity:       -m.Quantity,
		UnitCost:       m.UnitCost,
		ReferenceTable: m.ReferenceTable,
		ReferenceID:    m.ReferenceID,
		ReversalOf:     m.ID,
		Note:           note,
		UserID:         userID,
	}
}
