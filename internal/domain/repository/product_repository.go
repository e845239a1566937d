package repository

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
)

// CatalogRepository puerto de solo lectura sobre el catálogo (producto, categoría, variante, formato).
type CatalogRepository interface {
	// GetProductDetail devuelve el producto con sus referencias resueltas; (nil, nil) si no existe.
	GetProductDetail(ctx context.Context, productID string) (*entity.ProductDetail, error)
}
