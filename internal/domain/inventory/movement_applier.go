// Package inventory contiene el aplicador de movimientos de stock: la única vía
// permitida para modificar StockLedger.CurrentStock.
//
// Cada operación calcula primero el stock resultante y solo si es válido muta
// el ledger (stock, historia, versión y fecha) en un único paso; una operación
// rechazada deja el ledger intacto.
package inventory

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
)

// MaxStock tope de stock y cantidades: las columnas y el schema GraphQL son enteros de 32 bits.
const MaxStock = math.MaxInt32

// Operation movimiento solicitado sobre un ledger. Solo Inbound, Outbound y
// Adjustment la implementan (método next no exportado).
type Operation interface {
	Type() entity.MovementType
	Quantity() int
	next(current int) (int, error)
}

// Inbound entrada: suma Quantity al stock actual.
type Inbound struct{ quantity int }

// Outbound salida: resta Quantity; falla si no hay stock suficiente.
type Outbound struct{ quantity int }

// Adjustment ajuste: fija el stock al total absoluto indicado.
type Adjustment struct{ newTotal int }

var (
	_ Operation = Inbound{}
	_ Operation = Outbound{}
	_ Operation = Adjustment{}
)

// NewInbound construye una entrada; quantity debe ser > 0.
func NewInbound(quantity int) (Inbound, error) {
	if quantity <= 0 || quantity > MaxStock {
		return Inbound{}, invalidQuantity(entity.MovementEntrada, quantity)
	}
	return Inbound{quantity: quantity}, nil
}

// NewOutbound construye una salida; quantity debe ser > 0.
func NewOutbound(quantity int) (Outbound, error) {
	if quantity <= 0 || quantity > MaxStock {
		return Outbound{}, invalidQuantity(entity.MovementSalida, quantity)
	}
	return Outbound{quantity: quantity}, nil
}

// NewAdjustment construye un ajuste; newTotal debe ser >= 0.
func NewAdjustment(newTotal int) (Adjustment, error) {
	if newTotal < 0 || newTotal > MaxStock {
		return Adjustment{}, invalidQuantity(entity.MovementAjuste, newTotal)
	}
	return Adjustment{newTotal: newTotal}, nil
}

func (o Inbound) Type() entity.MovementType { return entity.MovementEntrada }
func (o Inbound) Quantity() int              { return o.quantity }
func (o Inbound) next(current int) (int, error) {
	if o.quantity <= 0 {
		return 0, invalidQuantity(entity.MovementEntrada, o.quantity)
	}
	if o.quantity > MaxStock || current > MaxStock-o.quantity {
		return 0, fmt.Errorf("%w: la entrada supera el stock máximo (%d)", domain.ErrInvalidQuantity, MaxStock)
	}
	return current + o.quantity, nil
}

func (o Outbound) Type() entity.MovementType { return entity.MovementSalida }
func (o Outbound) Quantity() int              { return o.quantity }
func (o Outbound) next(current int) (int, error) {
	if o.quantity <= 0 {
		return 0, invalidQuantity(entity.MovementSalida, o.quantity)
	}
	if o.quantity > current {
		return 0, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, o.quantity)
	}
	return current - o.quantity, nil
}

func (o Adjustment) Type() entity.MovementType { return entity.MovementAjuste }
func (o Adjustment) Quantity() int              { return o.newTotal }
func (o Adjustment) next(int) (int, error) {
	if o.newTotal < 0 || o.newTotal > MaxStock {
		return 0, invalidQuantity(entity.MovementAjuste, o.newTotal)
	}
	return o.newTotal, nil
}

// ParseMovementType valida el string recibido por la API; solo acepta los tres valores exactos.
func ParseMovementType(s string) (entity.MovementType, error) {
	switch t := entity.MovementType(s); t {
	case entity.MovementEntrada, entity.MovementSalida, entity.MovementAjuste:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q (use entrada, salida o ajuste)", domain.ErrInvalidMovementType, s)
}

// NewOperation construye la operación correspondiente al tipo textual.
func NewOperation(movementType string, quantity int) (Operation, error) {
	t, err := ParseMovementType(movementType)
	if err != nil {
		return nil, err
	}
	switch t {
	case entity.MovementEntrada:
		return NewInbound(quantity)
	case entity.MovementSalida:
		return NewOutbound(quantity)
	default:
		return NewAdjustment(quantity)
	}
}

// Apply aplica op sobre ledger y devuelve el movimiento agregado a su historia.
// Si la operación es rechazada el ledger no se modifica.
func Apply(ledger *entity.StockLedger, op Operation, reason, actorID string, now time.Time) (entity.StockMovement, error) {
	if ledger == nil {
		return entity.StockMovement{}, domain.ErrLedgerNotFound
	}
	if op == nil {
		return entity.StockMovement{}, fmt.Errorf("%w: operación vacía", domain.ErrInvalidMovementType)
	}
	newStock, err := op.next(ledger.CurrentStock)
	if err != nil {
		return entity.StockMovement{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason(op.Type())
	}
	mov := entity.StockMovement{
		ID:            uuid.New().String(),
		LedgerID:      ledger.ID,
		Type:          op.Type(),
		Quantity:      op.Quantity(),
		PreviousStock: ledger.CurrentStock,
		NewStock:      newStock,
		Reason:        reason,
		ActorID:       strings.TrimSpace(actorID),
		CreatedAt:     now,
	}

	ledger.CurrentStock = newStock
	ledger.Movements = append(ledger.Movements, mov)
	ledger.UpdatedAt = now
	ledger.Version++
	return mov, nil
}

// ApplyInbound entrada de quantity unidades.
func ApplyInbound(ledger *entity.StockLedger, quantity int, reason, actorID string, now time.Time) (entity.StockMovement, error) {
	op, err := NewInbound(quantity)
	if err != nil {
		return entity.StockMovement{}, err
	}
	return Apply(ledger, op, reason, actorID, now)
}

// ApplyOutbound salida de quantity unidades.
func ApplyOutbound(ledger *entity.StockLedger, quantity int, reason, actorID string, now time.Time) (entity.StockMovement, error) {
	op, err := NewOutbound(quantity)
	if err != nil {
		return entity.StockMovement{}, err
	}
	return Apply(ledger, op, reason, actorID, now)
}

// ApplyAdjustment fija el stock en newTotal.
func ApplyAdjustment(ledger *entity.StockLedger, newTotal int, reason, actorID string, now time.Time) (entity.StockMovement, error) {
	op, err := NewAdjustment(newTotal)
	if err != nil {
		return entity.StockMovement{}, err
	}
	return Apply(ledger, op, reason, actorID, now)
}

// DefaultReason motivo por defecto cuando el operador no envía uno.
func DefaultReason(t entity.MovementType) string {
	switch t {
	case entity.MovementEntrada:
		return "Entrada de inventario"
	case entity.MovementSalida:
		return "Salida de inventario"
	default:
		return "Ajuste de inventario"
	}
}

// StatusMessage mensaje legible para la respuesta de la API.
func StatusMessage(t entity.MovementType) string {
	switch t {
	case entity.MovementEntrada:
		return "Stock incrementado exitosamente"
	case entity.MovementSalida:
		return "Stock reducido exitosamente"
	default:
		return "Stock ajustado exitosamente"
	}
}

func invalidQuantity(t entity.MovementType, q int) error {
	if t == entity.MovementAjuste {
		return fmt.Errorf("%w: el ajuste requiere un total entre 0 y %d (recibido %d)", domain.ErrInvalidQuantity, MaxStock, q)
	}
	return fmt.Errorf("%w: la %s requiere una cantidad entre 1 y %d (recibido %d)", domain.ErrInvalidQuantity, t, MaxStock, q)
}
