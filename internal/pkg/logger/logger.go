// Package logger provides the logging surface of the key service: a
// small leveled interface and one slog-backed implementation with a
// console and a rotating-file variant. The engine and the CLI log
// through the interface only; key material never reaches a log line.
package logger

// Logger is the leveled logging interface the engine and CLI depend on.
// Arguments are concatenated into a single message.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}
