package inventory

import (
	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/domain/entity"
)

func toLedgerResponse(l *entity.StockLedger, p *entity.ProductDetail) *dto.LedgerResponse {
	if l == nil {
		return nil
	}
	out := &dto.LedgerResponse{
		ID:                 l.ID,
		ProductoID:         l.ProductID,
		Ubicacion:          l.Location,
		StockActual:        l.CurrentStock,
		Version:            l.Version,
		Producto:           toProductResponse(p),
		CreatedAt:          l.CreatedAt,
		UltimaModificacion: l.UpdatedAt,
	}
	if len(l.Movements) > 0 {
		out.Movimientos = make([]dto.MovementResponse, 0, len(l.Movements))
		for _, m := range l.Movements {
			out.Movimientos = append(out.Movimientos, toMovementResponse(m))
		}
	}
	return out
}

func toMovementResponse(m entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		Tipo:          string(m.Type),
		Cantidad:      m.Quantity,
		StockAnterior: m.PreviousStock,
		StockNuevo:    m.NewStock,
		Motivo:        m.Reason,
		UsuarioID:     m.ActorID,
		Fecha:         m.CreatedAt,
	}
}

func toProductResponse(p *entity.ProductDetail) *dto.ProductDetailResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductDetailResponse{
		ID:     p.ID,
		Nombre: p.Name,
		Precio: p.Price,
		Activo: p.Active,
	}
	if p.Category != nil {
		out.Categoria = &dto.NamedRefResponse{ID: p.Category.ID, Nombre: p.Category.Name}
	}
	if p.Variant != nil {
		out.Variante = &dto.NamedRefResponse{ID: p.Variant.ID, Nombre: p.Variant.Name}
	}
	if p.Format != nil {
		out.Formato = &dto.NamedRefResponse{ID: p.Format.ID, Nombre: p.Format.Name}
	}
	return out
}
