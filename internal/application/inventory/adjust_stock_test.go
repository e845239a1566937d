package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
	"github.com/regma/inventario-api/pkg/logger"
)

type fixture struct {
	store   *memory.Store
	ledgers *memory.StockLedgerRepository
	catalog *memory.CatalogRepository
	adjust  *inventory.AdjustStockUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	memory.SeedDemo(s)
	ledgers := memory.NewStockLedgerRepository(s)
	catalog := memory.NewCatalogRepository(s)
	return &fixture{
		store:   s,
		ledgers: ledgers,
		catalog: catalog,
		adjust:  inventory.NewAdjustStockUseCase(memory.NewTxRunner(s), ledgers, catalog, logger.Nop()),
	}
}

func intPtr(v int) *int { return &v }

func (f *fixture) stock(t *testing.T) int {
	t.Helper()
	l, err := f.ledgers.GetByID(context.Background(), memory.DemoLedgerID)
	require.NoError(t, err)
	return l.CurrentStock
}

func TestAdjustStock_EntradaIncrementa(t *testing.T) {
	f := newFixture(t)
	resp, msg, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID:       memory.DemoLedgerID,
		TipoMovimiento: "entrada",
		Cantidad:       intPtr(5),
		ActorID:        "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.StockActual)
	assert.Contains(t, msg, "incrementado")
	assert.Equal(t, 2, resp.Version)

	require.Len(t, resp.Movimientos, 1)
	assert.Equal(t, "entrada", resp.Movimientos[0].Tipo)
	assert.Equal(t, "Entrada de inventario", resp.Movimientos[0].Motivo)
	assert.Equal(t, "user-1", resp.Movimientos[0].UsuarioID)

	require.NotNil(t, resp.Producto, "la respuesta incluye el producto enriquecido")
	assert.Equal(t, "Kombucha", resp.Producto.Nombre)
	require.NotNil(t, resp.Producto.Categoria)
	assert.Equal(t, "Bebidas", resp.Producto.Categoria.Nombre)
	assert.NotNil(t, resp.Producto.Variante)
	assert.NotNil(t, resp.Producto.Formato)
}

func TestAdjustStock_SalidaInsuficiente(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "salida", Cantidad: intPtr(15),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, domain.IsClientError(err))
	assert.Equal(t, 10, f.stock(t))
}

func TestAdjustStock_AjusteAbsoluto(t *testing.T) {
	f := newFixture(t)
	resp, msg, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "ajuste", Cantidad: intPtr(3), Motivo: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.StockActual)
	assert.Contains(t, msg, "ajustado")
	assert.Equal(t, "conteo físico", resp.Movimientos[0].Motivo)
}

func TestAdjustStock_AjusteACero(t *testing.T) {
	f := newFixture(t)
	resp, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "ajuste", Cantidad: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockActual)
}

func TestAdjustStock_LedgerInexistente(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: "no-existe", TipoMovimiento: "entrada", Cantidad: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
}

func TestAdjustStock_CamposRequeridos(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		in    inventory.AdjustStockInput
		field string
	}{
		{"sin tipo", inventory.AdjustStockInput{LedgerID: memory.DemoLedgerID, Cantidad: intPtr(1)}, "tipoMovimiento"},
		{"sin cantidad", inventory.AdjustStockInput{LedgerID: memory.DemoLedgerID, TipoMovimiento: "entrada"}, "cantidad"},
		{"sin id", inventory.AdjustStockInput{TipoMovimiento: "entrada", Cantidad: intPtr(1)}, "id"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := f.adjust.AdjustStock(context.Background(), c.in)
			require.ErrorIs(t, err, domain.ErrMissingField)
			assert.Contains(t, err.Error(), c.field)
		})
	}
	assert.Equal(t, 10, f.stock(t))
}

func TestAdjustStock_TipoYCantidadInvalidos(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "invalido", Cantidad: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, _, err = f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "salida", Cantidad: intPtr(-2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 10, f.stock(t))
}

// salidas concurrentes: nunca se pierde una actualización y el stock nunca queda negativo.
func TestAdjustStock_SalidasConcurrentes(t *testing.T) {
	cases := []struct {
		name    string
		q       []int
		wantOK  int
		wantEnd int
	}{
		{"caben todas", []int{3, 4}, 2, 3},
		{"una no cabe", []int{6, 6}, 1, 4},
		{"muchas de a uno", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 10, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			var (
				wg           sync.WaitGroup
				mu           sync.Mutex
				ok, rejected int
			)
			for _, q := range c.q {
				wg.Add(1)
				go func(q int) {
					defer wg.Done()
					_, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
						LedgerID: memory.DemoLedgerID, TipoMovimiento: "salida", Cantidad: intPtr(q),
					})
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						ok++
					case errors.Is(err, domain.ErrInsufficientStock):
						rejected++
					default:
						t.Errorf("error inesperado: %v", err)
					}
				}(q)
			}
			wg.Wait()

			assert.Equal(t, c.wantOK, ok)
			assert.Equal(t, len(c.q)-c.wantOK, rejected)
			assert.Equal(t, c.wantEnd, f.stock(t))

			l, _ := f.ledgers.GetByID(context.Background(), memory.DemoLedgerID)
			assert.Len(t, l.Movements, c.wantOK)
			assert.Equal(t, 1+c.wantOK, l.Version)
		})
	}
}

// fallingTx simula un fallo de infraestructura al persistir.
type fallingTx struct{}

func (fallingTx) Run(context.Context, func(context.Context, repository.StockLedgerRepository) error) error {
	return errors.New("conexión rechazada")
}

func TestAdjustStock_FalloDePersistencia(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewAdjustStockUseCase(fallingTx{}, f.ledgers, f.catalog, nil)
	_, _, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "entrada", Cantidad: intPtr(1),
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.False(t, domain.IsClientError(err))
}

// conflictTx simula que otra operación modificó el ledger entre la lectura y la escritura.
type conflictTx struct{}

func (conflictTx) Run(context.Context, func(context.Context, repository.StockLedgerRepository) error) error {
	return domain.ErrConcurrentModification
}

func TestAdjustStock_ConflictoDeVersionNoSeEnvuelve(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewAdjustStockUseCase(conflictTx{}, f.ledgers, f.catalog, nil)
	_, _, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: memory.DemoLedgerID, TipoMovimiento: "entrada", Cantidad: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
}

func TestAdjustStock_ProductoFaltanteNoFalla(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ledgers.Create(context.Background(), &entity.StockLedger{
		ID: "huerfano", ProductID: "sin-catalogo", CurrentStock: 1, Version: 1,
	}))
	resp, _, err := f.adjust.AdjustStock(context.Background(), inventory.AdjustStockInput{
		LedgerID: "huerfano", TipoMovimiento: "entrada", Cantidad: intPtr(1),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Producto)
	assert.Equal(t, 2, resp.StockActual)
}
