package memory

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

// TxRunner transacciones en memoria: candado por ledger y escrituras diferidas hasta el commit.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn; si devuelve nil se aplican las escrituras preparadas, si no se descartan.
// Los candados tomados con GetForUpdate se liberan siempre al salir.
func (t *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, ledgers repository.StockLedgerRepository) error) error {
	tx := &txLedgers{store: t.store, locked: make(map[string]bool)}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

type stagedSave struct {
	ledger          *entity.StockLedger
	movement        entity.StockMovement
	expectedVersion int
}

// txLedgers vista transaccional del Store.
type txLedgers struct {
	store   *Store
	locked  map[string]bool
	creates []*entity.StockLedger
	saves   []stagedSave
}

var _ repository.StockLedgerRepository = (*txLedgers)(nil)

func (tx *txLedgers) release() {
	for id := range tx.locked {
		tx.store.unlock(id)
	}
}

func (tx *txLedgers) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range tx.saves {
		if err := s.checkSaveLocked(st.ledger.ID, st.expectedVersion); err != nil {
			return err
		}
	}
	for _, l := range tx.creates {
		if err := s.insertLocked(l); err != nil {
			return err
		}
	}
	for _, st := range tx.saves {
		s.applySaveLocked(st.ledger, st.movement, st.expectedVersion)
	}
	return nil
}

func (tx *txLedgers) Create(_ context.Context, ledger *entity.StockLedger) error {
	tx.creates = append(tx.creates, ledger.Clone())
	return nil
}

func (tx *txLedgers) GetByID(_ context.Context, id string) (*entity.StockLedger, error) {
	return tx.store.getLedger(id, true), nil
}

func (tx *txLedgers) GetForUpdate(ctx context.Context, id string) (*entity.StockLedger, error) {
	if !tx.locked[id] {
		if err := tx.store.lock(ctx, id); err != nil {
			return nil, err
		}
		tx.locked[id] = true
	}
	return tx.store.getLedger(id, false), nil
}

func (tx *txLedgers) Save(_ context.Context, ledger *entity.StockLedger, mov entity.StockMovement, expectedVersion int) error {
	tx.store.mu.RLock()
	err := tx.store.checkSaveLocked(ledger.ID, expectedVersion)
	tx.store.mu.RUnlock()
	if err != nil {
		return err
	}
	tx.saves = append(tx.saves, stagedSave{ledger: ledger.Clone(), movement: mov, expectedVersion: expectedVersion})
	return nil
}

func (tx *txLedgers) List(_ context.Context, limit, offset int) ([]*entity.StockLedger, int, error) {
	items, total := tx.store.list(limit, offset)
	return items, total, nil
}

func (tx *txLedgers) ListMovements(_ context.Context, ledgerID string, limit, offset int) ([]entity.StockMovement, int, error) {
	return tx.store.listMovements(ledgerID, limit, offset)
}

func (tx *txLedgers) ExistsForProduct(_ context.Context, productID, location string) (bool, error) {
	return tx.store.existsForProduct(productID, location), nil
}
