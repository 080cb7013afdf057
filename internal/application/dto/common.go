package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse confirmación de borrado lógico (documentos compensados en el libro).
type DeletedResponse struct {
	ID                string `json:"id"`
	CompensatingCount int    `json:"compensating_movements"`
}
