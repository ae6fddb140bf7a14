package savedfilters

import (
	"context"

	"go.uber.org/fx"

	"github.com/recordatlas/browse/v1/logger"
)

// FXModule provides the saved-filter store to an fx application and closes
// the database on shutdown.
var FXModule = fx.Module("savedfilters",
	fx.Provide(NewStoreWithDI),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams contains the dependencies needed to open the store.
type StoreParams struct {
	fx.In

	Config *Config `optional:"true"`
}

// NewStoreWithDI opens the saved-filter store for dependency injection.
func NewStoreWithDI(params StoreParams) (*Store, error) {
	return OpenStore(params.Config)
}

// RegisterStoreLifecycle closes the store when the application stops.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing saved-filter store", nil)
			return store.Close()
		},
	})
}
