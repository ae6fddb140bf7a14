package resultcache

import (
	"go.uber.org/fx"

	"github.com/recordatlas/browse/v1/observability"
)

// FXModule provides the result cache to the Fx dependency injection
// framework.
//
// Usage:
//
//	app := fx.New(
//	    resultcache.FXModule,
//	    fx.Supply(resultcache.DefaultConfig()),
//	    // other modules...
//	)
var FXModule = fx.Module("resultcache",
	fx.Provide(
		NewCacheWithDI,
	),
)

// CacheParams groups the dependencies needed to create the cache.
type CacheParams struct {
	fx.In

	Config   *Config
	Observer observability.Observer `optional:"true"`
}

// NewCacheWithDI creates the cache for use with Fx.
func NewCacheWithDI(params CacheParams) *Cache {
	cache := New(params.Config)
	if params.Observer != nil {
		cache.SetObserver(params.Observer)
	}
	return cache
}
