package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"
)

// Recovery перехватывает panic, логирует стек вызовов и отвечает 500 Internal Server Error.
// Детали паники клиенту не раскрываются.
func Recovery(api huma.API, fallback *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			LoggerFromContext(ctx.Context(), fallback).LogAttrs(context.Background(), slog.LevelError, "Panic recovered",
				slog.Any("recovered", v),
				slog.String("method", ctx.Operation().Method),
				slog.String("path", ctx.Operation().Path),
				slog.String("stack", string(debug.Stack())),
			)

			if err := huma.WriteErr(api, ctx, http.StatusInternalServerError, "Internal Server Error"); err != nil {
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()

		next(ctx)
	}
}
