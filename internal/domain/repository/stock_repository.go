package repository

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
)

// StockLedgerRepository define el puerto de persistencia para StockLedger y su historia.
// Los métodos que no encuentran el registro devuelven (nil, nil).
type StockLedgerRepository interface {
	Create(ctx context.Context, ledger *entity.StockLedger) error
	// GetByID carga el ledger con su historia completa en orden cronológico.
	GetByID(ctx context.Context, id string) (*entity.StockLedger, error)
	// GetForUpdate bloquea el ledger hasta el fin de la transacción (SELECT FOR UPDATE). No carga la historia.
	GetForUpdate(ctx context.Context, id string) (*entity.StockLedger, error)
	// Save persiste stock y versión de ledger solo si la versión almacenada es expectedVersion,
	// y agrega movement a la historia. Si la versión no coincide devuelve domain.ErrConcurrentModification.
	Save(ctx context.Context, ledger *entity.StockLedger, movement entity.StockMovement, expectedVersion int) error
	// List devuelve una página de ledgers (sin historia) y el total.
	List(ctx context.Context, limit, offset int) ([]*entity.StockLedger, int, error)
	// ListMovements devuelve una página de la historia, más reciente primero, y el total.
	// Si el ledger no existe devuelve domain.ErrLedgerNotFound.
	ListMovements(ctx context.Context, ledgerID string, limit, offset int) ([]entity.StockMovement, int, error)
	ExistsForProduct(ctx context.Context, productID, location string) (bool, error)
}
