package browser

import (
	"context"

	"go.uber.org/fx"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/logger"
	"github.com/recordatlas/browse/v1/observability"
	"github.com/recordatlas/browse/v1/resultcache"
)

// FXModule provides the browsing store to the Fx dependency injection
// framework and ties its shutdown to the application lifecycle.
//
// Usage:
//
//	app := fx.New(
//	    browser.FXModule,
//	    fx.Supply(browser.DefaultConfig("conn-7", "documents")),
//	    // an executor.Executor provider, e.g. the qdrant module
//	)
var FXModule = fx.Module("browser",
	fx.Provide(
		NewStoreWithDI,
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies needed to create a store.
type StoreParams struct {
	fx.In

	Config   *Config
	Executor executor.Executor
	Mutator  executor.Mutator       `optional:"true"`
	Cache    *resultcache.Cache     `optional:"true"`
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewStoreWithDI creates the store for use with Fx, wiring whichever
// optional dependencies the container provides.
func NewStoreWithDI(params StoreParams) *Store {
	store := NewStore(params.Config, params.Executor)
	if params.Mutator != nil {
		store.SetMutator(params.Mutator)
	}
	if params.Cache != nil {
		store.SetCache(params.Cache)
	}
	if params.Logger != nil {
		store.SetLogger(params.Logger)
	}
	if params.Observer != nil {
		store.SetObserver(params.Observer)
	}
	return store
}

// RegisterStoreLifecycle stops debounced edits and waits for background
// discovery on shutdown.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			store.Close()
			return nil
		},
	})
}
