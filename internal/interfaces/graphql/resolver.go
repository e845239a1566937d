package graphql

import (
	"context"
	"errors"
	"time"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/domain"
)

// Resolver raíz de Query y Mutation.
type Resolver struct {
	adjust  *inventory.AdjustStockUseCase
	ledgers *inventory.LedgerUseCase
}

// NewResolver construye el resolver raíz.
func NewResolver(adjust *inventory.AdjustStockUseCase, ledgers *inventory.LedgerUseCase) *Resolver {
	return &Resolver{adjust: adjust, ledgers: ledgers}
}

// Inventario devuelve null si el ledger no existe.
func (r *Resolver) Inventario(ctx context.Context, args struct{ ID gql.ID }) (*ledgerResolver, error) {
	l, err := r.ledgers.Get(ctx, string(args.ID))
	if errors.Is(err, domain.ErrLedgerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ledgerResolver{l: l}, nil
}

// pageArgs los valores por defecto vienen del schema (limit 20, offset 0).
type pageArgs struct {
	Limit  int32
	Offset int32
}

func (r *Resolver) Inventarios(ctx context.Context, args pageArgs) (*pageResolver, error) {
	page := dto.PageRequest{Limit: int(args.Limit), Offset: int(args.Offset)}
	out, err := r.ledgers.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return &pageResolver{p: out}, nil
}

type adjustArgs struct {
	ID             gql.ID
	TipoMovimiento string
	Cantidad       int32
	Motivo         *string
	UsuarioID      *string
}

// AjustarInventario aplica el movimiento con AdjustStockUseCase. Los rechazos de negocio
// vuelven como success:false; los fallos de infraestructura como error GraphQL.
func (r *Resolver) AjustarInventario(ctx context.Context, args adjustArgs) (*adjustResultResolver, error) {
	actor := ActorFromContext(ctx)
	if actor == "" && args.UsuarioID != nil {
		actor = *args.UsuarioID
	}
	cantidad := int(args.Cantidad)
	in := inventory.AdjustStockInput{
		LedgerID:       string(args.ID),
		TipoMovimiento: args.TipoMovimiento,
		Cantidad:       &cantidad,
		ActorID:        actor,
	}
	if args.Motivo != nil {
		in.Motivo = *args.Motivo
	}
	l, message, err := r.adjust.AdjustStock(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return nil, err
		}
		return &adjustResultResolver{message: err.Error()}, nil
	}
	return &adjustResultResolver{success: true, message: message, data: l}, nil
}

type adjustResultResolver struct {
	success bool
	message string
	data    *dto.LedgerResponse
}

func (r *adjustResultResolver) Success() bool   { return r.success }
func (r *adjustResultResolver) Message() string { return r.message }
func (r *adjustResultResolver) Data() *ledgerResolver {
	if r.data == nil {
		return nil
	}
	return &ledgerResolver{l: r.data}
}

type pageResolver struct{ p *dto.LedgerListResponse }

func (r *pageResolver) Items() []*ledgerResolver {
	out := make([]*ledgerResolver, 0, len(r.p.Items))
	for i := range r.p.Items {
		out = append(out, &ledgerResolver{l: &r.p.Items[i]})
	}
	return out
}
func (r *pageResolver) Total() int32  { return int32(r.p.Page.Total) }
func (r *pageResolver) Limit() int32  { return int32(r.p.Page.Limit) }
func (r *pageResolver) Offset() int32 { return int32(r.p.Page.Offset) }

type ledgerResolver struct{ l *dto.LedgerResponse }

func (r *ledgerResolver) ID() gql.ID         { return gql.ID(r.l.ID) }
func (r *ledgerResolver) ProductoID() gql.ID { return gql.ID(r.l.ProductoID) }
func (r *ledgerResolver) Ubicacion() *string { return optional(r.l.Ubicacion) }
func (r *ledgerResolver) StockActual() int32 { return int32(r.l.StockActual) }
func (r *ledgerResolver) Version() int32     { return int32(r.l.Version) }
func (r *ledgerResolver) CreatedAt() string  { return r.l.CreatedAt.Format(time.RFC3339) }
func (r *ledgerResolver) UltimaModificacion() string {
	return r.l.UltimaModificacion.Format(time.RFC3339)
}

func (r *ledgerResolver) Producto() *productResolver {
	if r.l.Producto == nil {
		return nil
	}
	return &productResolver{p: r.l.Producto}
}

func (r *ledgerResolver) Movimientos() []*movementResolver {
	out := make([]*movementResolver, 0, len(r.l.Movimientos))
	for i := range r.l.Movimientos {
		out = append(out, &movementResolver{m: &r.l.Movimientos[i]})
	}
	return out
}

type productResolver struct{ p *dto.ProductDetailResponse }

func (r *productResolver) ID() gql.ID         { return gql.ID(r.p.ID) }
func (r *productResolver) Nombre() string     { return r.p.Nombre }
func (r *productResolver) Precio() string     { return r.p.Precio.StringFixed(2) }
func (r *productResolver) Activo() bool       { return r.p.Activo }
func (r *productResolver) Categoria() *string { return refName(r.p.Categoria) }
func (r *productResolver) Variante() *string  { return refName(r.p.Variante) }
func (r *productResolver) Formato() *string   { return refName(r.p.Formato) }

type movementResolver struct{ m *dto.MovementResponse }

func (r *movementResolver) ID() gql.ID           { return gql.ID(r.m.ID) }
func (r *movementResolver) Tipo() string         { return r.m.Tipo }
func (r *movementResolver) Cantidad() int32      { return int32(r.m.Cantidad) }
func (r *movementResolver) StockAnterior() int32 { return int32(r.m.StockAnterior) }
func (r *movementResolver) StockNuevo() int32    { return int32(r.m.StockNuevo) }
func (r *movementResolver) Motivo() string       { return r.m.Motivo }
func (r *movementResolver) UsuarioID() *string   { return optional(r.m.UsuarioID) }
func (r *movementResolver) Fecha() string        { return r.m.Fecha.Format(time.RFC3339) }

func refName(ref *dto.NamedRefResponse) *string {
	if ref == nil {
		return nil
	}
	return &ref.Nombre
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
