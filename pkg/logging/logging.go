package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-logr/logr"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps LogLevel to the nearest slog.Level. slog has no built-in
// level above Error, so Critical is reported one step above it; the
// component tag and message still say "CRITICAL" explicitly.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

var defaultLogger *slog.Logger

// InitForCLI initializes the package-level logger. It must be called once
// at host startup before any of Debug/Info/Warn/Error/Critical are used;
// calls made before initialization fall back to stderr.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: filterLevel.SlogLevel(),
	})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// LogrSink returns a logr.Logger backed by the same handler InitForCLI
// configured, for embedders that standardize on the logr.Logger interface
// instead of this package's free functions. It returns the zero
// logr.Logger (a safe no-op) if InitForCLI has not been called yet.
func LogrSink() logr.Logger {
	if defaultLogger == nil {
		return logr.Logger{}
	}
	return logr.FromSlogHandler(defaultLogger.Handler())
}

func logInternal(level LogLevel, component string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	if defaultLogger == nil {
		now := time.Now().Format(time.RFC3339Nano)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s [%s] %s: %s (error: %v)\n", now, level, component, msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", now, level, component, msg)
		}
		return
	}

	if !defaultLogger.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	attrs := make([]slog.Attr, 0, 2)
	attrs = append(attrs, slog.String("component", component))
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if level == LevelCritical {
		attrs = append(attrs, slog.Bool("critical", true))
	}
	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message tagged with component.
func Debug(component string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, component, nil, messageFmt, args...)
}

// Info logs an informational message tagged with component.
func Info(component string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, component, nil, messageFmt, args...)
}

// Warn logs a warning message tagged with component.
func Warn(component string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, component, nil, messageFmt, args...)
}

// Error logs a failure tagged with component, carrying the causing error.
func Error(component string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, component, err, messageFmt, args...)
}

// Critical logs a critical alert tagged with component — raised when a
// module or the system as a whole has crossed the health monitor's
// failure threshold.
func Critical(component string, messageFmt string, args ...interface{}) {
	logInternal(LevelCritical, component, nil, messageFmt, args...)
}
