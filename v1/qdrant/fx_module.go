package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/recordatlas/browse/v1/executor"
)

// FXModule provides the Qdrant-backed executor to the Fx dependency
// injection framework.
//
// The module:
//  1. Provides the Client factory and binds it to the executor seam
//     (executor.Executor, executor.Mutator).
//  2. Invokes the lifecycle registration to close the client on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Supply(qdrant.FromEndpoint("localhost")),
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewClient,
		func(c *Client) executor.Executor { return c },
		func(c *Client) executor.Mutator { return c },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle closes the client when the application stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, c *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
