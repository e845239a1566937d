package entity

import "time"

// StockLedger representa el inventario de un producto en una ubicación.
// CurrentStock solo se modifica a través del aplicador de movimientos (domain/inventory).
type StockLedger struct {
	ID           string
	ProductID    string
	Location     string // vacío = ubicación principal
	CurrentStock int
	Movements    []StockMovement // orden cronológico; solo se agrega al final
	Version      int             // token de concurrencia optimista, inicia en 1
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone devuelve una copia profunda (la historia no se comparte entre copias).
func (l *StockLedger) Clone() *StockLedger {
	if l == nil {
		return nil
	}
	c := *l
	if l.Movements != nil {
		c.Movements = make([]StockMovement, len(l.Movements))
		copy(c.Movements, l.Movements)
	}
	return &c
}

// LastMovement devuelve el movimiento más reciente, si existe.
func (l *StockLedger) LastMovement() (StockMovement, bool) {
	if len(l.Movements) == 0 {
		return StockMovement{}, false
	}
	return l.Movements[len(l.Movements)-1], true
}
