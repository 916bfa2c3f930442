package hooks

import (
	"context"
	"net/url"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

const countCacheKeyPrefix = "go-rummage::paginate_count::v1"

// Counter supplies the total row count for a filtered, unpaginated query.
type Counter interface {
	Count(ctx context.Context, query *bun.SelectQuery) (int, error)
}

// QueryCounter counts through the query's own connection.
type QueryCounter struct{}

func (QueryCounter) Count(ctx context.Context, query *bun.SelectQuery) (int, error) {
	if query == nil {
		return 0, dependencyError("hooks: count query is required")
	}
	return query.Count(ctx)
}

// CachedCounter memoizes counts behind a cache service, keyed by the
// rendered query. Useful when the same filter is paginated repeatedly.
type CachedCounter struct {
	base  Counter
	cache repositorycache.CacheService
}

func NewCachedCounter(base Counter, cache repositorycache.CacheService) (*CachedCounter, error) {
	if base == nil {
		base = QueryCounter{}
	}
	if cache == nil {
		return nil, dependencyError("hooks: count cache service is required")
	}
	return &CachedCounter{base: base, cache: cache}, nil
}

func (c *CachedCounter) Count(ctx context.Context, query *bun.SelectQuery) (int, error) {
	if c == nil || c.cache == nil {
		return 0, dependencyError("hooks: cached counter is not configured")
	}
	if query == nil {
		return 0, dependencyError("hooks: count query is required")
	}
	key := CountCacheKey(query)
	return repositorycache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (int, error) {
		return c.base.Count(ctx, query)
	})
}

// CountCacheKey returns the deterministic cache key contract for a count:
// go-rummage::paginate_count::v1::<escaped rendered query>.
func CountCacheKey(query *bun.SelectQuery) string {
	return countCacheKeyPrefix + "::" + url.PathEscape(query.String())
}

var _ Counter = QueryCounter{}
var _ Counter = (*CachedCounter)(nil)
