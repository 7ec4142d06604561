package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for ChatCore. This allows
// users to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewSlogLogger creates a Logger writing structured records at the given
// level. Format is "json" or "text".
func NewSlogLogger(level LogLevel, format string) Logger {
	return NewSlogLoggerTo(os.Stdout, level, format)
}

// NewSlogLoggerTo is NewSlogLogger with an explicit output writer.
func NewSlogLoggerTo(w io.Writer, level LogLevel, format string) Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// ChatLogger wraps a slog.Logger adding contextual cloning helpers and domain
// convenience methods for the chat pipeline. It is cheap to copy via With*
// methods.
type ChatLogger struct {
	logger    *slog.Logger
	component string
	sessionID string
}

// ChatLoggerConfig configures construction of a ChatLogger.
type ChatLoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	Component string
}

// NewChatLogger builds a ChatLogger from a config (or defaults if nil).
func NewChatLogger(cfg *ChatLoggerConfig) *ChatLogger {
	if cfg == nil {
		cfg = &ChatLoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &ChatLogger{logger: slog.New(handler), component: cfg.Component}
}

// WithComponent sets the logical component (engine, chain, provider, etc.).
func (l *ChatLogger) WithComponent(c string) *ChatLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithSession attaches the session identifier to every record.
func (l *ChatLogger) WithSession(sid string) *ChatLogger {
	nl := *l
	nl.sessionID = sid
	return &nl
}

func (l *ChatLogger) attrs(extra ...slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(extra)+2)
	if l.component != "" {
		out = append(out, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		out = append(out, slog.String("session_id", l.sessionID))
	}
	return append(out, extra...)
}

// Debug logs at debug level.
func (l *ChatLogger) Debug(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, append(l.attrs(), argAttrs(args)...)...)
}

// Info logs at info level.
func (l *ChatLogger) Info(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, append(l.attrs(), argAttrs(args)...)...)
}

// Warn logs at warn level.
func (l *ChatLogger) Warn(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, append(l.attrs(), argAttrs(args)...)...)
}

// Error logs at error level.
func (l *ChatLogger) Error(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, append(l.attrs(), argAttrs(args)...)...)
}

// argAttrs converts alternating key/value args into slog attributes.
func argAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}

// LogProviderCall records latency and outcome of one provider adapter call.
func (l *ChatLogger) LogProviderCall(provider, op string, dur time.Duration, err error) {
	attrs := l.attrs(
		slog.String("provider", provider),
		slog.String("operation", op),
		slog.Duration("duration", dur),
		slog.Bool("success", err == nil),
	)
	level := slog.LevelInfo
	msg := "Provider call completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelWarn
		msg = "Provider call failed"
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// LogFallback records a fallback step in the provider chain.
func (l *ChatLogger) LogFallback(from, to, reason string) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Falling back",
		l.attrs(slog.String("from", from), slog.String("to", to), slog.String("reason", reason))...)
}

// LogTurn records a completed chat turn.
func (l *ChatLogger) LogTurn(sessionID string, intent string, confidence float64, source string, dur time.Duration) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Chat turn completed",
		l.attrs(
			slog.String("session_id", sessionID),
			slog.String("intent", intent),
			slog.Float64("confidence", confidence),
			slog.String("source", source),
			slog.Duration("duration", dur),
		)...)
}
