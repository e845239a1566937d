package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regma/inventario-api/internal/domain/entity"
)

func TestGenerateKardex_ProduceUnPDF(t *testing.T) {
	g := NewKardexPDFGenerator()
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	l := &entity.StockLedger{
		ID: "22222222-2222-2222-2222-222222222222", ProductID: "p1", CurrentStock: 1200, Version: 3,
		Movements: []entity.StockMovement{
			{Type: entity.MovementEntrada, Quantity: 1500, PreviousStock: 0, NewStock: 1500, Reason: "Compra", CreatedAt: now},
			{Type: entity.MovementSalida, Quantity: 300, PreviousStock: 1500, NewStock: 1200, Reason: "Venta", ActorID: "u-1", CreatedAt: now},
		},
	}
	p := &entity.ProductDetail{
		Product:  entity.Product{ID: "p1", Name: "Kombucha", Price: decimal.RequireFromString("8500")},
		Category: &entity.Category{ID: "c1", Name: "Bebidas"},
	}

	out, err := g.GenerateKardex(l, p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := g.GenerateKardex(&entity.StockLedger{ID: "x", Version: 1}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))

	_, err = g.GenerateKardex(nil, nil)
	assert.Error(t, err)
}

func TestPrinterSeparaMiles(t *testing.T) {
	g := NewKardexPDFGenerator()
	assert.Equal(t, "1.234.567", g.printer.Sprintf("%d", 1234567))
}

func TestProductDetailLine_CamposFaltantesConGuion(t *testing.T) {
	g := NewKardexPDFGenerator()
	line := g.productDetailLine(&entity.ProductDetail{
		Product:  entity.Product{ID: "p1", Name: "Kombucha", Price: decimal.RequireFromString("12500")},
		Category: &entity.Category{ID: "c1", Name: "Bebidas"},
	})
	assert.Equal(t, "Categoría: Bebidas   |   Variante: -   |   Formato: -   |   Precio: $12.500", line)
}
