package logger

import (
	"fmt"
	"log/slog"
)

// Logger carries the package/function scope as structured attributes so call
// sites can chain context instead of repeating it on every line.
type Logger struct {
	scope    string
	function string
	file     string
	log      *slog.Logger
}

func New(scope string) Logger {
	return Logger{
		scope: scope,
		log:   slog.Default(),
	}
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) attrs(args ...any) []any {
	out := make([]any, 0, len(args)+6)
	out = append(out, "scope", l.scope)
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	return append(out, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, l.attrs(args...)...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, l.attrs(args...)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, l.attrs(args...)...)
}

// Er logs an error without producing one, for paths that keep going.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, l.attrs(append(args, "error", err)...)...)
}

// ErMsg logs an error-level message without producing an error.
func (l Logger) ErMsg(msg string, args ...any) {
	l.log.Error(msg, l.attrs(args...)...)
}

// Err logs and returns a wrapped error so callers can `return log.Err(...)`.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg is Error without attributes at the call site mattering to the result.
func (l Logger) ErrMsg(msg string, args ...any) error {
	return l.Error(msg, args...)
}
