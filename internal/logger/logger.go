package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu   sync.Mutex
	base *zap.Logger
)

// Init builds the process-wide logger. Production mode emits JSON to
// stdout; anything else uses the human-readable development encoder.
func Init(production bool) {
	mu.Lock()
	defer mu.Unlock()

	if base != nil {
		return
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// static config; Build only fails on bad output paths
		l = zap.NewNop()
	}
	base = l
}

// L returns the process-wide logger. Falls back to a no-op logger when
// Init was never called, which keeps tests quiet.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = zap.NewNop()
	}
	return base
}

func fields(m map[string]any) []zap.Field {
	fs := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(msg string, f map[string]any)  { L().Info(msg, fields(f)...) }
func Warn(msg string, f map[string]any)  { L().Warn(msg, fields(f)...) }
func Error(msg string, f map[string]any) { L().Error(msg, fields(f)...) }

func Fatal(msg string, f map[string]any) {
	l := L()
	l.Error(msg, fields(f)...)
	_ = l.Sync()
	os.Exit(1)
}
