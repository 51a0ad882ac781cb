package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/iudanet/contactdesk/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health обрабатывает health check запросы
type Health struct {
	Storage      Pinger
	ErrorHandler func(context.Context, error)
	Version      string
}

// HealthOutput ответ health check
type HealthOutput struct {
	Body api.HealthResponse
}

func (h *Health) RegisterHealth(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/health",
		handlerWithErrorHandler(h.health, h.ErrorHandler),
		opErrors(http.StatusServiceUnavailable),
	)
}

// health отвечает 503, если хранилище недоступно
func (h *Health) health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if h.Storage != nil {
		if err := h.Storage.Ping(ctx); err != nil {
			return nil, huma.Error503ServiceUnavailable("storage unavailable", err)
		}
	}

	return &HealthOutput{Body: api.HealthResponse{
		Status:  "ok",
		Version: h.Version,
	}}, nil
}
