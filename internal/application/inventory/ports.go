package inventory

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando el repositorio de ledgers atado a ella.
// Garantiza atomicidad y serialización por ledger para el motor de inventario: un ledger leído con
// GetForUpdate queda bloqueado hasta que fn retorna. Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, ledgers repository.StockLedgerRepository) error) error
}

// KardexGenerator genera el PDF del kardex de un ledger.
type KardexGenerator interface {
	GenerateKardex(ledger *entity.StockLedger, product *entity.ProductDetail) ([]byte, error)
}
