package logging

import (
	"testing"

	"github.com/ogurasousui/dwrecords/internal/platform/config"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cfg       config.LoggingConfig
		enabled   zapcore.Level
		suppressed zapcore.Level
	}{
		{config.LoggingConfig{Level: "info", Format: "json"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Format: "console"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.LoggingConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tc := range cases {
		logger, err := New(tc.cfg)
		if err != nil {
			t.Fatalf("New(%+v) returned error: %v", tc.cfg, err)
		}
		if !logger.Core().Enabled(tc.enabled) {
			t.Errorf("%+v: expected %s to be enabled", tc.cfg, tc.enabled)
		}
		if logger.Core().Enabled(tc.suppressed) {
			t.Errorf("%+v: expected %s to be suppressed", tc.cfg, tc.suppressed)
		}
	}
}

func TestNew_RejectsUnknownOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(config.LoggingConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
