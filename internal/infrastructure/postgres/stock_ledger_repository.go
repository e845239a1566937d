package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación de StockLedgerRepository sobre PostgreSQL (usable con pool o tx).
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

const ledgerColumns = `id, producto_id, ubicacion, stock_actual, version, created_at, updated_at`

const movementColumns = `id, inventario_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo,
	COALESCE(usuario_id, ''), created_at`

// Create inserta el ledger y los movimientos que ya traiga (stock inicial) de forma atómica.
func (r *StockLedgerRepo) Create(ctx context.Context, l *entity.StockLedger) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create ledger: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO inventarios (id, producto_id, ubicacion, stock_actual, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.Exec(ctx, query, l.ID, l.ProductID, l.Location, l.CurrentStock, l.Version, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inventario para producto %s en %q", domain.ErrDuplicate, l.ProductID, l.Location)
		}
		return fmt.Errorf("insert ledger: %w", err)
	}
	for _, m := range l.Movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create ledger: %w", err)
	}
	return nil
}

// GetByID obtiene el ledger con su historia en orden cronológico.
func (r *StockLedgerRepo) GetByID(ctx context.Context, id string) (*entity.StockLedger, error) {
	l, err := r.getOne(ctx, `SELECT `+ledgerColumns+` FROM inventarios WHERE id = $1`, id)
	if err != nil || l == nil {
		return l, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movimientos_inventario WHERE inventario_id = $1
		ORDER BY secuencia ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list ledger history: %w", err)
	}
	l.Movements, err = scanMovements(rows)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetForUpdate obtiene el ledger y bloquea la fila para update (SELECT FOR UPDATE). Requiere tx.
func (r *StockLedgerRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLedger, error) {
	return r.getOne(ctx, `SELECT `+ledgerColumns+` FROM inventarios WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockLedgerRepo) getOne(ctx context.Context, query, id string) (*entity.StockLedger, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var l entity.StockLedger
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.ProductID, &l.Location, &l.CurrentStock, &l.Version, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return &l, nil
}

// Save actualiza stock y versión condicionado a expectedVersion e inserta el movimiento, en una sola unidad.
func (r *StockLedgerRepo) Save(ctx context.Context, l *entity.StockLedger, m entity.StockMovement, expectedVersion int) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save ledger: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE inventarios
		SET stock_actual = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`,
		l.ID, l.CurrentStock, l.UpdatedAt, expectedVersion)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: el stock no puede quedar negativo", domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	if err := insertMovement(ctx, tx, m); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save ledger: %w", err)
	}
	return nil
}

// List página de ledgers (sin historia) ordenada por fecha de creación.
func (r *StockLedgerRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLedger, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventarios`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledgers: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM inventarios
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLedger
	for rows.Next() {
		var l entity.StockLedger
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Location, &l.CurrentStock, &l.Version, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &l)
	}
	return out, total, rows.Err()
}

// ListMovements historia más reciente primero.
func (r *StockLedgerRepo) ListMovements(ctx context.Context, ledgerID string, limit, offset int) ([]entity.StockMovement, int, error) {
	if !validUUID(ledgerID) {
		return nil, 0, domain.ErrLedgerNotFound
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventarios WHERE id = $1)`, ledgerID).Scan(&exists); err != nil {
		return nil, 0, fmt.Errorf("ledger exists: %w", err)
	}
	if !exists {
		return nil, 0, domain.ErrLedgerNotFound
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movimientos_inventario WHERE inventario_id = $1`, ledgerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movimientos_inventario WHERE inventario_id = $1
		ORDER BY secuencia DESC
		LIMIT $2 OFFSET $3`, ledgerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	movs, err := scanMovements(rows)
	if err != nil {
		return nil, 0, err
	}
	return movs, total, nil
}

// ExistsForProduct indica si ya hay ledger para el producto en la ubicación (sin distinguir mayúsculas).
func (r *StockLedgerRepo) ExistsForProduct(ctx context.Context, productID, location string) (bool, error) {
	if !validUUID(productID) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM inventarios WHERE producto_id = $1 AND lower(ubicacion) = lower($2)
		)`, productID, location).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ledger exists for product: %w", err)
	}
	return exists, nil
}

func insertMovement(ctx context.Context, q Querier, m entity.StockMovement) error {
	_, err := q.Exec(ctx, `
		INSERT INTO movimientos_inventario
			(id, inventario_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.LedgerID, string(m.Type), m.Quantity, m.PreviousStock, m.NewStock, m.Reason, nullIfEmpty(m.ActorID), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]entity.StockMovement, error) {
	defer rows.Close()
	var out []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var tipo string
		if err := rows.Scan(&m.ID, &m.LedgerID, &tipo, &m.Quantity, &m.PreviousStock, &m.NewStock, &m.Reason, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = entity.MovementType(tipo)
		out = append(out, m)
	}
	return out, rows.Err()
}
