package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lecturas del catálogo (productos con categoría, variante y formato).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetProductDetail obtiene el producto con sus referencias resueltas (LEFT JOIN).
func (r *CatalogRepo) GetProductDetail(ctx context.Context, productID string) (*entity.ProductDetail, error) {
	if !validUUID(productID) {
		return nil, nil
	}
	query := `
		SELECT p.id, p.nombre, p.precio, p.activo,
			COALESCE(p.categoria_id::text, ''), COALESCE(p.variante_id::text, ''), COALESCE(p.formato_id::text, ''),
			p.created_at, p.updated_at,
			c.id::text, c.nombre, v.id::text, v.nombre, f.id::text, f.nombre
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN variantes v ON v.id = p.variante_id
		LEFT JOIN formatos f ON f.id = p.formato_id
		WHERE p.id = $1`

	var d entity.ProductDetail
	var catID, catName, varID, varName, fmtID, fmtName *string
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&d.ID, &d.Name, &d.Price, &d.Active,
		&d.CategoryID, &d.VariantID, &d.FormatID,
		&d.CreatedAt, &d.UpdatedAt,
		&catID, &catName, &varID, &varName, &fmtID, &fmtName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product detail: %w", err)
	}
	if catID != nil {
		d.Category = &entity.Category{ID: *catID, Name: deref(catName)}
	}
	if varID != nil {
		d.Variant = &entity.Variant{ID: *varID, Name: deref(varName)}
	}
	if fmtID != nil {
		d.Format = &entity.Format{ID: *fmtID, Name: deref(fmtName)}
	}
	return &d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
