package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores del motor de ajuste de inventario.
var (
	ErrMissingField           = errors.New("campo requerido")
	ErrInvalidMovementType    = errors.New("tipo de movimiento inválido")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrLedgerNotFound         = errors.New("registro de inventario no encontrado")
	ErrConcurrentModification = errors.New("el inventario fue modificado por otra operación")
	ErrPersistence            = errors.New("error de persistencia")
)

// IsClientError indica si err proviene de una validación o regla de negocio
// (respuesta 4xx) en lugar de un fallo de infraestructura.
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidMovementType),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidInput):
		return true
	}
	return false
}
