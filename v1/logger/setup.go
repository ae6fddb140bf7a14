package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around Uber's Zap logger.
//
// Most call sites use the convenience methods (Info, Error, ...) which take an
// optional error and free-form field maps. The underlying zap.Logger is
// exported for the rare case where Zap-specific functionality is needed.
type Logger struct {
	// Zap is the underlying zap.Logger instance.
	Zap *zap.Logger
}

// NewLoggerClient builds a configured Logger.
//
// The logger emits JSON to stderr with ISO8601 timestamps, capitalised level
// names, caller information, and the process ID plus service name as initial
// fields. Initialization failure is fatal; a process without logging is not
// worth starting.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "record-browser",
//	})
//	log.Info("store ready", nil, nil)
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: zl}
}

// Debug logs a debug-level message with optional error and field maps.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, buildFields(err, fields)...)
}

// Info logs an info-level message with optional error and field maps.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, buildFields(err, fields)...)
}

// Warning logs a warn-level message with optional error and field maps.
func (l *Logger) Warning(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, buildFields(err, fields)...)
}

// Error logs an error-level message with optional error and field maps.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, buildFields(err, fields)...)
}

// buildFields flattens the optional field maps into zap fields, appending the
// error (when present) under the conventional "error" key.
func buildFields(err error, fieldMaps []map[string]interface{}) []zap.Field {
	var out []zap.Field
	for _, m := range fieldMaps {
		for k, v := range m {
			out = append(out, zap.Any(k, v))
		}
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}
