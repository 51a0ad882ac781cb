package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type loggerKey struct{}

// Logging кладет в контекст логгер с request id и логирует запрос после обработки.
// Уровень определяется статусом ответа: 5xx error, 4xx warn, иначе info.
func Logging(parent *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		op := ctx.Operation()

		logger := parent.With(slog.String("request_id", RequestIDFromContext(ctx.Context())))
		next(huma.WithValue(ctx, loggerKey{}, logger.With(slog.String("operation", op.OperationID))))

		status := ctx.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		logger.LogAttrs(context.Background(), level, "HTTP request",
			slog.String("method", op.Method),
			slog.String("path", op.Path),
			slog.String("proto", ctx.Version().Proto),
			slog.String("remote_addr", ctx.RemoteAddr()),
			slog.String("user_agent", ctx.Header("User-Agent")),
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

// LoggerFromContext возвращает логгер запроса, а вне запроса fallback
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

// ErrorHandler возвращает функцию, которая логирует ошибку обработчика
// логгером запроса. Клиентские ошибки пишутся как warn.
func ErrorHandler(fallback *slog.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("error", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.GetStatus() / 100 {
			case 5:
				level = slog.LevelError
			case 4:
				level = slog.LevelWarn
			case 3:
				level = slog.LevelInfo
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		LoggerFromContext(ctx, fallback).LogAttrs(context.Background(), level, "Request failed", attrs...)
	}
}
