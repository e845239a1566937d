package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/regma/inventario-api/internal/domain/entity"
)

// Identificadores fijos del catálogo de demostración.
const (
	DemoProductID = "11111111-1111-1111-1111-111111111111"
	DemoLedgerID  = "22222222-2222-2222-2222-222222222222"
)

// SeedDemo carga un catálogo mínimo y un ledger con stock 10, para levantar la API con DB_DRIVER=memory.
func SeedDemo(s *Store) {
	now := time.Now().UTC()
	s.AddCategory(entity.Category{ID: "cat-bebidas", Name: "Bebidas"})
	s.AddVariant(entity.Variant{ID: "var-original", Name: "Original"})
	s.AddFormat(entity.Format{ID: "fmt-350ml", Name: "Botella 350 ml"})
	s.AddProduct(entity.Product{
		ID:         DemoProductID,
		Name:       "Kombucha",
		Price:      decimal.RequireFromString("8500"),
		Active:     true,
		CategoryID: "cat-bebidas",
		VariantID:  "var-original",
		FormatID:   "fmt-350ml",
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[DemoLedgerID] = &entity.StockLedger{
		ID:           DemoLedgerID,
		ProductID:    DemoProductID,
		CurrentStock: 10,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
