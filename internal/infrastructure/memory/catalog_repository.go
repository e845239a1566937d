package memory

import (
	"context"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

// CatalogRepository lecturas del catálogo en memoria.
type CatalogRepository struct {
	store *Store
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository construye el repositorio.
func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// GetProductDetail resuelve categoría, variante y formato del producto. Referencias colgantes quedan en nil.
func (r *CatalogRepository) GetProductDetail(_ context.Context, productID string) (*entity.ProductDetail, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	d := &entity.ProductDetail{Product: p}
	if c, ok := s.categories[p.CategoryID]; ok {
		d.Category = &c
	}
	if v, ok := s.variants[p.VariantID]; ok {
		d.Variant = &v
	}
	if f, ok := s.formats[p.FormatID]; ok {
		d.Format = &f
	}
	return d, nil
}
