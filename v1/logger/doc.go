// Package logger provides structured logging for the record-browse module.
//
// It wraps Uber's Zap with a small convenience surface: leveled methods that
// accept an optional error plus free-form field maps, JSON output to stderr,
// and service/pid initial fields. Packages that want to be mockable declare
// their own narrow Logger interface and accept anything that satisfies it;
// this package returns the concrete *Logger.
//
// Direct usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "record-browser"})
//	log.Info("page loaded", nil, map[string]interface{}{"page": 2, "rows": 50})
//
// With Fx, include [FXModule] and provide a logger.Config.
package logger
