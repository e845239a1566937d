package memory

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

// StockLedgerRepository acceso directo (fuera de transacción) a los ledgers del Store.
type StockLedgerRepository struct {
	store *Store
}

var _ repository.StockLedgerRepository = (*StockLedgerRepository)(nil)

// NewStockLedgerRepository construye el repositorio.
func NewStockLedgerRepository(store *Store) *StockLedgerRepository {
	return &StockLedgerRepository{store: store}
}

func (r *StockLedgerRepository) Create(_ context.Context, ledger *entity.StockLedger) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertLocked(ledger)
}

func (r *StockLedgerRepository) GetByID(_ context.Context, id string) (*entity.StockLedger, error) {
	return r.store.getLedger(id, true), nil
}

// GetForUpdate fuera de una transacción no bloquea; equivale a una lectura sin historia.
func (r *StockLedgerRepository) GetForUpdate(_ context.Context, id string) (*entity.StockLedger, error) {
	return r.store.getLedger(id, false), nil
}

func (r *StockLedgerRepository) Save(_ context.Context, ledger *entity.StockLedger, mov entity.StockMovement, expectedVersion int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkSaveLocked(ledger.ID, expectedVersion); err != nil {
		return err
	}
	r.store.applySaveLocked(ledger, mov, expectedVersion)
	return nil
}

func (r *StockLedgerRepository) List(_ context.Context, limit, offset int) ([]*entity.StockLedger, int, error) {
	items, total := r.store.list(limit, offset)
	return items, total, nil
}

func (r *StockLedgerRepository) ListMovements(_ context.Context, ledgerID string, limit, offset int) ([]entity.StockMovement, int, error) {
	return r.store.listMovements(ledgerID, limit, offset)
}

func (r *StockLedgerRepository) ExistsForProduct(_ context.Context, productID, location string) (bool, error) {
	return r.store.existsForProduct(productID, location), nil
}
