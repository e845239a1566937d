package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/inventory"
)

var now = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newLedger(stock int) *entity.StockLedger {
	return &entity.StockLedger{
		ID:           "ledger-1",
		ProductID:    "prod-1",
		CurrentStock: stock,
		Version:      1,
		CreatedAt:    now.Add(-time.Hour),
		UpdatedAt:    now.Add(-time.Hour),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyInbound_SumaExactamenteLaCantidad(t *testing.T) {
	for _, stock := range []int{0, 1, 10, 999} {
		for _, q := range []int{1, 5, 250} {
			l := newLedger(stock)
			mov, err := inventory.ApplyInbound(l, q, "", "user-1", now)
			require.NoError(t, err)

			assert.Equal(t, stock+q, l.CurrentStock)
			require.Len(t, l.Movements, 1, "debe agregarse exactamente un movimiento")
			assert.Equal(t, entity.MovementEntrada, mov.Type)
			assert.Equal(t, q, mov.Quantity)
			assert.Equal(t, stock, mov.PreviousStock)
			assert.Equal(t, stock+q, mov.NewStock)
			assert.Equal(t, "user-1", mov.ActorID)
			assert.Equal(t, l.Movements[0], mov)
		}
	}
}

func TestApplyInbound_CantidadNoPositiva(t *testing.T) {
	for _, q := range []int{0, -1, -50} {
		l := newLedger(10)
		_, err := inventory.ApplyInbound(l, q, "", "", now)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, 10, l.CurrentStock)
		assert.Empty(t, l.Movements)
	}
}

func TestApplyInbound_NoSuperaStockMaximo(t *testing.T) {
	l := newLedger(10)
	_, err := inventory.ApplyInbound(l, inventory.MaxStock-9, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 10, l.CurrentStock)
	assert.Empty(t, l.Movements)

	mov, err := inventory.ApplyInbound(l, inventory.MaxStock-10, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxStock, mov.NewStock)

	_, err = inventory.ApplyInbound(newLedger(0), inventory.MaxStock+1, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyOutbound_RestaCuandoHayStock(t *testing.T) {
	l := newLedger(10)
	mov, err := inventory.ApplyOutbound(l, 10, "venta mostrador", "", now)
	require.NoError(t, err)

	assert.Equal(t, 0, l.CurrentStock, "se puede vaciar el stock por completo")
	assert.Equal(t, entity.MovementSalida, mov.Type)
	assert.Equal(t, "venta mostrador", mov.Reason)
	assert.Empty(t, mov.ActorID, "sin actor se atribuye al sistema")
}

func TestApplyOutbound_StockInsuficienteNoModifica(t *testing.T) {
	l := newLedger(10)
	before := l.Clone()

	_, err := inventory.ApplyOutbound(l, 15, "", "", now)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 10")

	assert.Equal(t, before, l, "una operación rechazada no debe tocar el ledger")
}

func TestApplyOutbound_ReintentoRechazadoEsIdempotente(t *testing.T) {
	l := newLedger(3)
	for i := 0; i < 5; i++ {
		_, err := inventory.ApplyOutbound(l, 4, "", "", now)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 3, l.CurrentStock)
	assert.Empty(t, l.Movements)
	assert.Equal(t, 1, l.Version)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAdjustment_FijaTotalAbsoluto(t *testing.T) {
	for _, prev := range []int{0, 3, 10, 100} {
		for _, n := range []int{0, 3, 42} {
			l := newLedger(prev)
			mov, err := inventory.ApplyAdjustment(l, n, "", "", now)
			require.NoError(t, err)

			assert.Equal(t, n, l.CurrentStock)
			assert.Equal(t, entity.MovementAjuste, mov.Type)
			assert.Equal(t, n, mov.Quantity, "en ajuste la cantidad es el nuevo total, no un delta")
			assert.Equal(t, prev, mov.PreviousStock)
		}
	}
}

func TestApplyAdjustment_NegativoRechazado(t *testing.T) {
	l := newLedger(5)
	_, err := inventory.ApplyAdjustment(l, -1, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 5, l.CurrentStock)
}

func TestApplyAdjustment_FueraDeRangoRechazado(t *testing.T) {
	l := newLedger(5)
	_, err := inventory.ApplyAdjustment(l, 3000000000, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 5, l.CurrentStock)
	assert.Empty(t, l.Movements)

	_, err = inventory.NewOperation("ajuste", inventory.MaxStock+1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply / NewOperation
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ActualizaVersionFechaYMotivoPorDefecto(t *testing.T) {
	cases := map[string]string{
		"entrada": "Entrada de inventario",
		"salida":  "Salida de inventario",
		"ajuste":  "Ajuste de inventario",
	}
	for tipo, motivo := range cases {
		l := newLedger(10)
		op, err := inventory.NewOperation(tipo, 2)
		require.NoError(t, err)

		mov, err := inventory.Apply(l, op, "   ", "", now)
		require.NoError(t, err)
		assert.Equal(t, motivo, mov.Reason)
		assert.Equal(t, 2, l.Version)
		assert.Equal(t, now, l.UpdatedAt)
		assert.Equal(t, now, mov.CreatedAt)
		assert.NotEmpty(t, mov.ID)
		assert.Equal(t, "ledger-1", mov.LedgerID)
	}
}

func TestApply_HistoriaEnOrdenCronologico(t *testing.T) {
	l := newLedger(0)
	_, err := inventory.ApplyInbound(l, 10, "", "", now)
	require.NoError(t, err)
	_, err = inventory.ApplyOutbound(l, 4, "", "", now.Add(time.Minute))
	require.NoError(t, err)
	_, err = inventory.ApplyAdjustment(l, 20, "", "", now.Add(2*time.Minute))
	require.NoError(t, err)

	require.Len(t, l.Movements, 3)
	assert.Equal(t, entity.MovementEntrada, l.Movements[0].Type)
	assert.Equal(t, entity.MovementSalida, l.Movements[1].Type)
	assert.Equal(t, entity.MovementAjuste, l.Movements[2].Type)
	assert.Equal(t, 6, l.Movements[2].PreviousStock)
	assert.Equal(t, 20, l.CurrentStock)
	assert.Equal(t, 4, l.Version)

	last, ok := l.LastMovement()
	require.True(t, ok)
	assert.Equal(t, l.Movements[2], last)
}

func TestApply_OperacionDeValorCeroEsRechazada(t *testing.T) {
	l := newLedger(10)
	_, err := inventory.Apply(l, inventory.Inbound{}, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.Apply(l, nil, "", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = inventory.Apply(nil, inventory.Adjustment{}, "", "", now)
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
	assert.Equal(t, 10, l.CurrentStock)
}

func TestNewOperation_TipoInvalido(t *testing.T) {
	_, err := inventory.NewOperation("invalido", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = inventory.NewOperation("", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestNewOperation_TipoExacto(t *testing.T) {
	op, err := inventory.NewOperation("salida", 3)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSalida, op.Type())
	assert.Equal(t, 3, op.Quantity())

	for _, tipo := range []string{"ENTRADA", "Salida", " ajuste", "entrada "} {
		_, err := inventory.NewOperation(tipo, 3)
		assert.ErrorIs(t, err, domain.ErrInvalidMovementType, tipo)
	}
}

func TestNewOperation_ValidaCantidadSegunTipo(t *testing.T) {
	_, err := inventory.NewOperation("entrada", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = inventory.NewOperation("salida", -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	op, err := inventory.NewOperation("ajuste", 0)
	require.NoError(t, err, "ajuste a cero es válido")
	assert.Equal(t, 0, op.Quantity())
}

func TestStatusMessage(t *testing.T) {
	assert.Contains(t, inventory.StatusMessage(entity.MovementEntrada), "incrementado")
	assert.Contains(t, inventory.StatusMessage(entity.MovementSalida), "reducido")
	assert.Contains(t, inventory.StatusMessage(entity.MovementAjuste), "ajustado")
}
