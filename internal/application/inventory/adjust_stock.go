package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	movement "github.com/regma/inventario-api/internal/domain/inventory"
	"github.com/regma/inventario-api/internal/domain/repository"
	"github.com/regma/inventario-api/pkg/logger"
)

// AdjustStockInput entrada del caso de uso de ajuste. ActorID ya viene resuelto
// por la capa de transporte (token > body > vacío).
type AdjustStockInput struct {
	LedgerID       string `json:"id" validate:"required"`
	TipoMovimiento string `json:"tipoMovimiento" validate:"required"`
	Cantidad       *int   `json:"cantidad" validate:"required"`
	Motivo         string `json:"motivo" validate:"max=500"`
	ActorID        string `json:"usuarioId" validate:"max=100"`
}

// AdjustStockUseCase aplica entrada/salida/ajuste sobre un ledger de forma transaccional
// (bloqueo de fila + versión) y devuelve el ledger enriquecido con el catálogo.
type AdjustStockUseCase struct {
	txRunner TxRunner
	reader   ledgerReader
	log      *logger.Logger
	now      func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	ledgers repository.StockLedgerRepository,
	catalog repository.CatalogRepository,
	log *logger.Logger,
) *AdjustStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{
		txRunner: txRunner,
		reader:   ledgerReader{ledgers: ledgers, catalog: catalog, log: log},
		log:      log.Component("inventario"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AdjustStock valida la entrada, bloquea el ledger, aplica el movimiento, persiste y
// recarga el ledger con su historia y el producto. Devuelve además el mensaje de estado.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustStockInput) (*dto.LedgerResponse, string, error) {
	if err := validateInput(in); err != nil {
		return nil, "", err
	}
	op, err := movement.NewOperation(in.TipoMovimiento, *in.Cantidad)
	if err != nil {
		return nil, "", err
	}

	var applied entity.StockMovement
	err = uc.txRunner.Run(ctx, func(ctx context.Context, ledgers repository.StockLedgerRepository) error {
		ledger, err := ledgers.GetForUpdate(ctx, in.LedgerID)
		if err != nil {
			return err
		}
		if ledger == nil {
			return domain.ErrLedgerNotFound
		}
		expected := ledger.Version
		mov, err := movement.Apply(ledger, op, in.Motivo, in.ActorID, uc.now())
		if err != nil {
			return err
		}
		if err := ledgers.Save(ctx, ledger, mov, expected); err != nil {
			return err
		}
		applied = mov
		return nil
	})
	if err != nil {
		err = asPersistence(err)
		if errors.Is(err, domain.ErrPersistence) {
			uc.log.Error().Err(err).
				Str("ledger_id", in.LedgerID).
				Str("tipo", string(op.Type())).
				Msg("no se pudo persistir el movimiento")
		}
		return nil, "", err
	}

	uc.log.Info().
		Str("ledger_id", in.LedgerID).
		Str("tipo", string(applied.Type)).
		Int("cantidad", applied.Quantity).
		Int("stock_anterior", applied.PreviousStock).
		Int("stock_nuevo", applied.NewStock).
		Str("usuario_id", applied.ActorID).
		Msg("movimiento aplicado")

	resp, err := uc.reader.joined(ctx, in.LedgerID)
	if err != nil {
		return nil, "", err
	}
	return resp, movement.StatusMessage(op.Type()), nil
}

// ledgerReader lecturas fuera de transacción: ledger con historia + detalle de producto.
type ledgerReader struct {
	ledgers repository.StockLedgerRepository
	catalog repository.CatalogRepository
	log     *logger.Logger
}

func (r ledgerReader) joined(ctx context.Context, id string) (*dto.LedgerResponse, error) {
	ledger, err := r.ledgers.GetByID(ctx, id)
	if err != nil {
		return nil, asPersistence(err)
	}
	if ledger == nil {
		return nil, domain.ErrLedgerNotFound
	}
	product, err := r.product(ctx, ledger.ProductID)
	if err != nil {
		return nil, err
	}
	return toLedgerResponse(ledger, product), nil
}

func (r ledgerReader) product(ctx context.Context, productID string) (*entity.ProductDetail, error) {
	product, err := r.catalog.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, asPersistence(err)
	}
	if product == nil {
		r.log.Warn().Str("producto_id", productID).Msg("ledger referencia un producto inexistente")
	}
	return product, nil
}

// asPersistence deja pasar los errores de dominio y envuelve el resto en ErrPersistence.
func asPersistence(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsClientError(err),
		errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrPersistence):
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
