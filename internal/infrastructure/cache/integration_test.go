//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/regma/inventario-api/internal/infrastructure/cache"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
)

func TestCatalogCache_Redis(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := cache.NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	s := memory.NewStore()
	memory.SeedDemo(s)
	next := &countingCatalog{inner: memory.NewCatalogRepository(s)}
	c := cache.NewCatalogCache(next, rdb, time.Minute, nil)

	for i := 0; i < 3; i++ {
		d, err := c.GetProductDetail(ctx, memory.DemoProductID)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "Kombucha", d.Name)
		require.NotNil(t, d.Category)
		assert.Equal(t, "Bebidas", d.Category.Name)
		assert.Equal(t, "8500", d.Price.String())
	}
	assert.Equal(t, 1, next.calls, "las lecturas siguientes salen de Redis")

	ttl, err := rdb.TTL(ctx, cache.ProductKey(memory.DemoProductID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx, memory.DemoProductID))
	_, err = c.GetProductDetail(ctx, memory.DemoProductID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
