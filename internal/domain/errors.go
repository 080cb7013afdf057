package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Reglas de negocio de los productores de movimientos (4xx, nunca se reintentan).
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrReturnQuantityExceeded = errors.New("la cantidad a devolver supera la cantidad disponible para devolución")
	ErrProductNotOnInvoice    = errors.New("el producto no está en la factura")
	ErrPriceBelowMinimum      = errors.New("precio por debajo del mínimo de venta")
)

// IsValidation indica si err es un error de validación de negocio (respuesta 4xx).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrReturnQuantityExceeded) ||
		errors.Is(err, ErrProductNotOnInvoice) ||
		errors.Is(err, ErrPriceBelowMinimum)
}
