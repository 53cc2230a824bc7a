package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexmenard/e2ee-api/config"
)

// Logger is a thin wrapper over slog. The zero value logs through
// slog.Default, which keeps test construction cheap.
type Logger struct {
	sl *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level := parseLevel(cfg.LoggerMode.Level)

	var handler slog.Handler
	if cfg.LoggerMode.Development {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return &Logger{sl: slog.New(handler)}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) logger() *slog.Logger {
	if l == nil || l.sl == nil {
		return slog.Default()
	}
	return l.sl
}

func (l *Logger) Debug(msg string, kv ...any) { l.logger().Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.logger().Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.logger().Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.logger().Error(msg, kv...) }

func (l *Logger) Errorf(format string, args ...any) {
	l.logger().Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger().Info(fmt.Sprintf(format, args...))
}
