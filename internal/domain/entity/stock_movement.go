package entity

import "time"

// MovementType tipo de movimiento de inventario (enumeración cerrada).
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementEntrada MovementType = "entrada" // suma al stock
	MovementSalida  MovementType = "salida"  // resta del stock
	MovementAjuste  MovementType = "ajuste"  // fija el stock a un total absoluto
)

// StockMovement registro de auditoría de un cambio de stock. Inmutable una vez agregado.
type StockMovement struct {
	ID            string
	LedgerID      string
	Type          MovementType
	Quantity      int // delta para entrada/salida; total absoluto para ajuste
	PreviousStock int
	NewStock      int
	Reason        string
	ActorID       string // vacío = sistema
	CreatedAt     time.Time
}
