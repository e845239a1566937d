// Package cache decora el catálogo de solo lectura con Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/domain/repository"
	"github.com/regma/inventario-api/pkg/logger"
)

const productKeyPrefix = "regma:catalogo:producto:"

var _ repository.CatalogRepository = (*CatalogCache)(nil)

// CatalogCache cachea GetProductDetail en Redis. Si Redis falla se registra un warning y se
// consulta el repositorio subyacente: la caché nunca hace fallar una lectura.
type CatalogCache struct {
	next repository.CatalogRepository
	rdb  redis.Cmdable
	ttl  time.Duration
	log  *logger.Logger
}

// NewCatalogCache envuelve next. ttl <= 0 usa 5 minutos.
func NewCatalogCache(next repository.CatalogRepository, rdb redis.Cmdable, ttl time.Duration, log *logger.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogCache{next: next, rdb: rdb, ttl: ttl, log: log.Component("cache")}
}

// ProductKey clave Redis del detalle de un producto.
func ProductKey(productID string) string {
	return productKeyPrefix + productID
}

func (c *CatalogCache) GetProductDetail(ctx context.Context, productID string) (*entity.ProductDetail, error) {
	key := ProductKey(productID)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var d entity.ProductDetail
		if err := json.Unmarshal(raw, &d); err == nil {
			return &d, nil
		}
		c.log.Warn().Str("key", key).Msg("entrada de caché corrupta; se ignora")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible; leyendo catálogo directo")
	}

	d, err := c.next.GetProductDetail(ctx, productID)
	if err != nil || d == nil {
		return d, err
	}
	if payload, err := json.Marshal(d); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
		}
	}
	return d, nil
}

// Invalidate elimina el producto de la caché (regmactl seed --invalidate-cache).
func (c *CatalogCache) Invalidate(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, ProductKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
