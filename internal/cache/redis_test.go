package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without a reachable Redis the cache degrades to a pass-through: reads
// miss, writes and invalidations are no-ops, nothing panics.
func TestCacheDegradesWithoutRedis(t *testing.T) {
	ctx := context.Background()
	key := StatementKeyFmt + "42"

	_, ok := GetCached(ctx, key)
	assert.False(t, ok)

	SetCached(ctx, key, []byte(`{}`), time.Minute)
	InvalidateBillingCaches(ctx)

	_, ok = GetCached(ctx, key)
	assert.False(t, ok)
	assert.False(t, IsHealthy())
}
