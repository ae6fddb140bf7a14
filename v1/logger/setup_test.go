package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerClientLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{Debug, zapcore.DebugLevel},
		{Info, zapcore.InfoLevel},
		{Warning, zapcore.WarnLevel},
		{Error, zapcore.ErrorLevel},
		{"nonsense", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		log := NewLoggerClient(DefaultConfig().WithLevel(tc.level))
		if log.Zap == nil {
			t.Fatalf("level %q: nil zap logger", tc.level)
		}
		if got := log.Zap.Level(); got != tc.want {
			t.Errorf("level %q: got %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestLoggerMethodsAcceptFieldsAndError(t *testing.T) {
	log := NewLoggerClient(DefaultConfig().WithLevel(Debug).WithServiceName("test"))
	fields := map[string]interface{}{"namespace": "docs"}

	log.Debug("debug message", nil, fields)
	log.Info("info message", nil)
	log.Warning("warning message", errors.New("soft failure"))
	log.Error("error message", errors.New("hard failure"), fields)
}
