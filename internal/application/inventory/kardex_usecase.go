package inventory

import (
	"context"
	"fmt"

	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/repository"
)

// KardexUseCase genera el kardex (historia de movimientos) de un ledger en PDF.
type KardexUseCase struct {
	ledgers   repository.StockLedgerRepository
	catalog   repository.CatalogRepository
	generator KardexGenerator
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(ledgers repository.StockLedgerRepository, catalog repository.CatalogRepository, generator KardexGenerator) *KardexUseCase {
	return &KardexUseCase{ledgers: ledgers, catalog: catalog, generator: generator}
}

// Kardex devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *KardexUseCase) Kardex(ctx context.Context, id string) ([]byte, string, error) {
	ledger, err := uc.ledgers.GetByID(ctx, id)
	if err != nil {
		return nil, "", asPersistence(err)
	}
	if ledger == nil {
		return nil, "", domain.ErrLedgerNotFound
	}
	product, err := uc.catalog.GetProductDetail(ctx, ledger.ProductID)
	if err != nil {
		return nil, "", asPersistence(err)
	}
	pdf, err := uc.generator.GenerateKardex(ledger, product)
	if err != nil {
		return nil, "", fmt.Errorf("generar kardex: %w", err)
	}
	return pdf, fmt.Sprintf("kardex-%s.pdf", ledger.ID), nil
}
