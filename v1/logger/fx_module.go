package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule integrates the logger into an Fx-based application.
//
// It provides the NewLoggerClient factory and registers a shutdown hook that
// flushes buffered log entries. A logger.Config instance must be available in
// the dependency injection container.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle registers an OnStop hook that syncs the underlying
// Zap logger so buffered entries are not lost on shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
