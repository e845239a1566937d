package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para PATCH /api/inventario/:id.
// Cantidad es puntero para distinguir "ausente" de 0 (un ajuste a 0 es válido).
type AdjustStockRequest struct {
	TipoMovimiento string `json:"tipoMovimiento" validate:"required" example:"salida"`
	Cantidad       *int   `json:"cantidad" validate:"required" example:"5"`
	Motivo         string `json:"motivo,omitempty" validate:"omitempty,max=500" example:"Venta mostrador"`
	UsuarioID      string `json:"usuarioId,omitempty" validate:"omitempty,max=100"`
}

// CreateLedgerRequest body para POST /api/inventario.
type CreateLedgerRequest struct {
	ProductoID   string `json:"productoId" validate:"required"`
	Ubicacion    string `json:"ubicacion,omitempty" validate:"omitempty,max=100"`
	StockInicial int    `json:"stockInicial" validate:"min=0"`
	Motivo       string `json:"motivo,omitempty" validate:"omitempty,max=500"`
}

// NamedRefResponse referencia de catálogo (categoría, variante o formato).
type NamedRefResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// ProductDetailResponse producto con sus referencias resueltas.
type ProductDetailResponse struct {
	ID        string            `json:"id"`
	Nombre    string            `json:"nombre"`
	Precio    decimal.Decimal   `json:"precio" swaggertype:"string" example:"12500.00"`
	Activo    bool              `json:"activo"`
	Categoria *NamedRefResponse `json:"categoria"`
	Variante  *NamedRefResponse `json:"variante"`
	Formato   *NamedRefResponse `json:"formato"`
}

// MovementResponse entrada del kardex.
type MovementResponse struct {
	ID            string    `json:"id"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stockAnterior"`
	StockNuevo    int       `json:"stockNuevo"`
	Motivo        string    `json:"motivo"`
	UsuarioID     string    `json:"usuarioId,omitempty"`
	Fecha         time.Time `json:"fecha"`
}

// LedgerResponse inventario de un producto con su historia y el producto enriquecido.
type LedgerResponse struct {
	ID                 string                 `json:"id"`
	ProductoID         string                 `json:"productoId"`
	Ubicacion          string                 `json:"ubicacion,omitempty"`
	StockActual        int                    `json:"stockActual"`
	Version            int                    `json:"version"`
	Producto           *ProductDetailResponse `json:"producto"`
	Movimientos        []MovementResponse     `json:"movimientos,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	UltimaModificacion time.Time              `json:"ultimaModificacion"`
}

// LedgerListResponse página de ledgers (sin historia).
type LedgerListResponse struct {
	Items []LedgerResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// MovementListResponse página de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
