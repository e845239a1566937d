package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	movement "github.com/regma/inventario-api/internal/domain/inventory"
	"github.com/regma/inventario-api/internal/domain/repository"
	"github.com/regma/inventario-api/pkg/logger"
)

// ProvisionInput entrada para crear el ledger de un producto en una ubicación.
type ProvisionInput struct {
	ProductoID   string `json:"productoId" validate:"required"`
	Ubicacion    string `json:"ubicacion" validate:"max=100"`
	StockInicial int    `json:"stockInicial" validate:"min=0"`
	Motivo       string `json:"motivo" validate:"max=500"`
	ActorID      string `json:"usuarioId" validate:"max=100"`
}

// LedgerUseCase alta y consultas de inventario.
type LedgerUseCase struct {
	ledgers repository.StockLedgerRepository
	reader  ledgerReader
	log     *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgers repository.StockLedgerRepository, catalog repository.CatalogRepository, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		ledgers: ledgers,
		reader:  ledgerReader{ledgers: ledgers, catalog: catalog, log: log},
		log:     log.Component("inventario"),
	}
}

// Provision crea el ledger de un producto existente. Un stock inicial > 0 queda
// registrado como primera entrada de la historia.
func (uc *LedgerUseCase) Provision(ctx context.Context, in ProvisionInput) (*dto.LedgerResponse, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	product, err := uc.reader.catalog.GetProductDetail(ctx, in.ProductoID)
	if err != nil {
		return nil, asPersistence(err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductoID)
	}
	exists, err := uc.ledgers.ExistsForProduct(ctx, in.ProductoID, in.Ubicacion)
	if err != nil {
		return nil, asPersistence(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe inventario para el producto en esta ubicación", domain.ErrDuplicate)
	}

	now := time.Now().UTC()
	ledger := &entity.StockLedger{
		ID:        uuid.New().String(),
		ProductID: in.ProductoID,
		Location:  in.Ubicacion,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.StockInicial > 0 {
		if _, err := movement.ApplyInbound(ledger, in.StockInicial, in.Motivo, in.ActorID, now); err != nil {
			return nil, err
		}
	}
	if err := uc.ledgers.Create(ctx, ledger); err != nil {
		return nil, asPersistence(err)
	}
	uc.log.Info().
		Str("ledger_id", ledger.ID).
		Str("producto_id", ledger.ProductID).
		Int("stock_inicial", ledger.CurrentStock).
		Msg("inventario creado")
	return toLedgerResponse(ledger, product), nil
}

// Get devuelve el ledger con historia y producto enriquecido.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*dto.LedgerResponse, error) {
	return uc.reader.joined(ctx, id)
}

// List página de ledgers con su producto (sin historia).
func (uc *LedgerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.LedgerListResponse, error) {
	page.DefaultPage()
	ledgers, total, err := uc.ledgers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, asPersistence(err)
	}
	items := make([]dto.LedgerResponse, 0, len(ledgers))
	for _, l := range ledgers {
		product, err := uc.reader.product(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toLedgerResponse(l, product))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Movements historia de auditoría del ledger, más reciente primero.
func (uc *LedgerUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movs, total, err := uc.ledgers.ListMovements(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, asPersistence(err)
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
