// Package middleware содержит huma middleware сервера: request id,
// логирование запросов, восстановление после паники и метрики.
package middleware

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// HeaderRequestID заголовок с идентификатором запроса
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLen ограничивает длину принятого от клиента request id
const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestID берет request id из заголовка или генерирует новый UUID,
// кладет его в контекст и возвращает клиенту в ответе
func RequestID() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		ctx.SetHeader(HeaderRequestID, id)
		next(huma.WithValue(ctx, requestIDKey{}, id))
	}
}

// RequestIDFromContext возвращает request id или пустую строку
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
