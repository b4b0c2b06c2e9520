package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewProductionLogger(t *testing.T) {
	t.Parallel()

	for _, debug := range []bool{false, true} {
		log, err := NewProductionLogger(debug)
		if err != nil {
			t.Fatalf("NewProductionLogger(%v) error = %v", debug, err)
		}
		if log == nil {
			t.Fatalf("NewProductionLogger(%v) returned nil", debug)
		}
	}
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Parallel()

	log, err := NewDevelopmentLogger(true)
	if err != nil {
		t.Fatalf("NewDevelopmentLogger() error = %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug mode logger does not enable debug level")
	}
}

func TestSyncNilLogger(t *testing.T) {
	t.Parallel()

	if err := Sync(nil); err != nil {
		t.Errorf("Sync(nil) error = %v", err)
	}
}
