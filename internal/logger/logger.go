package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Logger wraps a zap sugared logger so the rest of the backend never
// imports zap directly.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Fatalw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(sanitizeKVs(keysAndValues)...)}
}

const maxLoggedTextLen = 512

var redactKeysOnce sync.Once
var redactKeys map[string]bool

// sanitizeKVs redacts credentials and truncates contract text so full
// documents never end up in log lines.
func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	redactKeysOnce.Do(func() {
		redactKeys = map[string]bool{}
		for _, k := range []string{"password", "token", "authorization", "secret", "api_key", "apikey"} {
			redactKeys[k] = true
		}
	})
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key, _ := kv[i].(string)
		norm := strings.TrimSpace(strings.ToLower(key))
		val := kv[i+1]
		switch {
		case redactKeys[norm]:
			val = "[REDACTED]"
		case strings.Contains(norm, "document_text") || strings.Contains(norm, "clause"):
			if s, ok := val.(string); ok && len(s) > maxLoggedTextLen {
				val = s[:maxLoggedTextLen] + "..."
			}
		}
		out = append(out, kv[i], val)
	}
	return out
}
