// Package router собирает http.Handler сервера: huma API под префиксом,
// health check и экспорт метрик Prometheus.
package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/iudanet/contactdesk/internal/server/handlers"
	"github.com/iudanet/contactdesk/internal/server/middleware"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

// DefaultPrefix префикс REST API по умолчанию
const DefaultPrefix = "/api"

// Options параметры роутера
type Options struct {
	Storage storage.Storage
	Logger  *slog.Logger
	// Metrics набор метрик запросов, по умолчанию создается новый
	Metrics *metrics.Set
	// Prefix монтирует API по префиксу, пустой означает корень
	Prefix   string
	Title    string
	Version  string
	Revision string
}

// New создает http.Handler со всеми маршрутами сервера
func New(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewSet()
	}

	buildInfo := "build_info" + middleware.Labels(
		"goversion", runtime.Version(),
		"title", opts.Title,
		"version", opts.Version,
		"revision", opts.Revision,
	) + " 1\n"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		writeMetrics(w, buildInfo, opts.Metrics)
	})

	root := humago.New(mux, huma.DefaultConfig(opts.Title, opts.Version))
	onError := middleware.ErrorHandler(opts.Logger)

	group := func(prefix string) huma.API {
		api := huma.NewGroup(root, prefix)
		api.UseMiddleware(
			middleware.RequestID(),
			middleware.Logging(opts.Logger),
			middleware.Metrics(opts.Metrics),
			middleware.Recovery(api, opts.Logger),
		)
		return api
	}

	huma.AutoRegister(group(""), &handlers.Health{
		Storage:      opts.Storage,
		ErrorHandler: onError,
		Version:      opts.Version,
	})

	api := group(opts.Prefix)
	huma.AutoRegister(api, &handlers.Contacts{Store: opts.Storage, ErrorHandler: onError})
	huma.AutoRegister(api, &handlers.Companies{Store: opts.Storage, ErrorHandler: onError})

	return mux
}

func writeMetrics(w io.Writer, buildInfo string, set *metrics.Set) {
	_, _ = fmt.Fprint(w, buildInfo)
	set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}
