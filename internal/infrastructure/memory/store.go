// Package memory implementa los puertos de persistencia en memoria (DB_DRIVER=memory y tests).
//
// Cada ledger tiene su propio candado; TxRunner lo mantiene desde GetForUpdate hasta que
// la función transaccional retorna, y solo entonces aplica las escrituras preparadas.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
)

// Store datos en memoria compartidos por los repositorios de este paquete.
type Store struct {
	mu         sync.RWMutex
	ledgers    map[string]*entity.StockLedger
	products   map[string]entity.Product
	categories map[string]entity.Category
	variants   map[string]entity.Variant
	formats    map[string]entity.Format
	users      map[string]*entity.User

	locksMu sync.Mutex
	locks   map[string]*ledgerLock
}

// ledgerLock candado de un ledger; refs cuenta dueños y esperas para liberar la entrada.
type ledgerLock struct {
	ch   chan struct{}
	refs int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		ledgers:    make(map[string]*entity.StockLedger),
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
		variants:   make(map[string]entity.Variant),
		formats:    make(map[string]entity.Format),
		users:      make(map[string]*entity.User),
		locks:      make(map[string]*ledgerLock),
	}
}

// AddCategory registra una categoría del catálogo.
func (s *Store) AddCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// AddVariant registra una variante.
func (s *Store) AddVariant(v entity.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants[v.ID] = v
}

// AddFormat registra un formato.
func (s *Store) AddFormat(f entity.Format) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats[f.ID] = f
}

// AddProduct registra un producto.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// lock adquiere el candado del ledger id; respeta la cancelación de ctx.
func (s *Store) lock(ctx context.Context, id string) error {
	s.locksMu.Lock()
	lk, ok := s.locks[id]
	if !ok {
		lk = &ledgerLock{ch: make(chan struct{}, 1)}
		s.locks[id] = lk
	}
	lk.refs++
	s.locksMu.Unlock()

	select {
	case lk.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.release(id, lk)
		return ctx.Err()
	}
}

func (s *Store) unlock(id string) {
	s.locksMu.Lock()
	lk := s.locks[id]
	s.locksMu.Unlock()
	<-lk.ch
	s.release(id, lk)
}

// release descuenta una referencia y borra la entrada cuando nadie la usa.
func (s *Store) release(id string, lk *ledgerLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(s.locks, id)
	}
}

// getLedger copia del ledger; withHistory=false omite los movimientos.
func (s *Store) getLedger(id string, withHistory bool) *entity.StockLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[id]
	if !ok {
		return nil
	}
	c := l.Clone()
	if !withHistory {
		c.Movements = nil
	}
	return c
}

func (s *Store) existsForProduct(productID, location string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsForProductLocked(productID, location)
}

func (s *Store) existsForProductLocked(productID, location string) bool {
	for _, l := range s.ledgers {
		if l.ProductID == productID && strings.EqualFold(l.Location, location) {
			return true
		}
	}
	return false
}

// insertLocked agrega un ledger nuevo; s.mu debe estar tomado en escritura.
func (s *Store) insertLocked(l *entity.StockLedger) error {
	if _, ok := s.ledgers[l.ID]; ok {
		return domain.ErrDuplicate
	}
	if s.existsForProductLocked(l.ProductID, l.Location) {
		return domain.ErrDuplicate
	}
	s.ledgers[l.ID] = l.Clone()
	return nil
}

// checkSaveLocked verifica la versión esperada sin modificar nada.
func (s *Store) checkSaveLocked(id string, expectedVersion int) error {
	stored, ok := s.ledgers[id]
	if !ok {
		return domain.ErrLedgerNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	return nil
}

// applySaveLocked escribe stock y versión y agrega el movimiento. Requiere checkSaveLocked previo.
func (s *Store) applySaveLocked(l *entity.StockLedger, mov entity.StockMovement, expectedVersion int) {
	stored := s.ledgers[l.ID]
	stored.CurrentStock = l.CurrentStock
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = l.UpdatedAt
	stored.Movements = append(stored.Movements, mov)
}

func (s *Store) list(limit, offset int) ([]*entity.StockLedger, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*entity.StockLedger, 0, len(s.ledgers))
	for _, l := range s.ledgers {
		c := l.Clone()
		c.Movements = nil
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), len(all)
}

func (s *Store) listMovements(id string, limit, offset int) ([]entity.StockMovement, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[id]
	if !ok {
		return nil, 0, domain.ErrLedgerNotFound
	}
	n := len(l.Movements)
	out := make([]entity.StockMovement, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, l.Movements[i])
	}
	return paginate(out, limit, offset), n, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
