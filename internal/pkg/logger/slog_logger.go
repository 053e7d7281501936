package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"rsa_key_service/internal/pkg/config"
)

// slogLogger adapts a slog.Logger to the Logger interface. The console
// and file variants share it; they differ only in handler and
// destination.
type slogLogger struct {
	inner *slog.Logger
}

// NewConsoleLogger returns a logger writing human-readable lines to
// stdout at the given level.
func NewConsoleLogger(level string) Logger {
	return newTextLogger(os.Stdout, level)
}

func newTextLogger(w io.Writer, level string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &slogLogger{inner: slog.New(handler)}
}

// NewFileLogger returns a logger writing JSON lines through lumberjack
// rotation. Zero rotation values take lumberjack's defaults.
func NewFileLogger(settings *config.LoggerSettings) Logger {
	writer := &lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    settings.MaxSizeMB,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAgeDays,
		Compress:   true,
	}
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(settings.LogLevel)})
	return &slogLogger{inner: slog.New(handler)}
}

func (l *slogLogger) Debug(args ...any) { l.inner.Debug(fmt.Sprint(args...)) }
func (l *slogLogger) Info(args ...any)  { l.inner.Info(fmt.Sprint(args...)) }
func (l *slogLogger) Warn(args ...any)  { l.inner.Warn(fmt.Sprint(args...)) }
func (l *slogLogger) Error(args ...any) { l.inner.Error(fmt.Sprint(args...)) }

// parseLevel maps a settings level string to a slog level. Unknown
// strings default to info; settings validation rejects them upstream.
func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
