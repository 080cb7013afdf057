package dto

import "time"

// CreateReturnRequest body para POST /api/purchase-returns y /api/sales-returns.
type CreateReturnRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
	Note      string `json:"note" validate:"max=500"`
}

// UpdateReturnRequest body para PUT de devoluciones: solo cambia la cantidad.
type UpdateReturnRequest struct {
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Note     string `json:"note" validate:"max=500"`
}

// ReturnResponse devolución en respuestas.
type ReturnResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	InvoiceID string    `json:"invoice_id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
