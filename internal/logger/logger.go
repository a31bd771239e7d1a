package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON log records with service metadata attached.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the given service mode.
func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a fresh request correlation id.
func GenerateRequestID() string {
	return "req_" + uuid.NewString()[:8]
}

func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, requestID, nil, fields)
}

func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, requestID, nil, fields)
}

func (l *Logger) Warn(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, action, message, requestID, nil, fields)
}

func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	l.log(slog.LevelError, action, message, requestID, err, fields)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, err error, fields map[string]interface{}) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}

	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}

	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
