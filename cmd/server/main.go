package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/iudanet/contactdesk/internal/logger"
	"github.com/iudanet/contactdesk/internal/server/router"
	"github.com/iudanet/contactdesk/internal/server/storage"
	"github.com/iudanet/contactdesk/internal/server/storage/boltdb"
	"github.com/iudanet/contactdesk/internal/server/storage/sqlstore"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	Host              string        `          doc:"host to listen on"                                 default:""`
	Prefix            string        `          doc:"mount endpoints at a prefix"                       default:"/api"`
	Database          string        `short:"d" doc:"storage: sqlite:PATH, bolt:PATH or postgres://DSN" default:"sqlite:contactdesk.db"`
	LogLevel          string        `          doc:"log from debug, info, warn or error"               default:"info"`
	LogFormat         string        `          doc:"format logs as text or json"                       default:"text"`
	LogFile           string        `          doc:"write logs to stdout, stderr or append to file"    default:"stderr"`
	Port              int           `short:"p" doc:"port to listen on"                                 default:"8000"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers"              default:"15s"`
	ShutdownTimeout   time.Duration `          doc:"time allowed for in-flight requests on shutdown"   default:"30s"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(logger.Options{
			Level:  options.LogLevel,
			Format: options.LogFormat,
			File:   options.LogFile,
		})

		var (
			srv   *http.Server
			store storage.Storage
		)

		hooks.OnStart(func() {
			ctx := context.Background()

			var err error
			store, err = openStorage(ctx, options.Database)
			if err != nil {
				log.Error("Failed to open storage", "database", redact(options.Database), "error", err)
				os.Exit(1)
			}

			srv = newServer(options, router.New(router.Options{
				Storage:  store,
				Logger:   log,
				Prefix:   options.Prefix,
				Title:    "ContactDesk API",
				Version:  Version,
				Revision: GitCommit,
			}), log)

			log.Info("Server starting",
				"addr", srv.Addr,
				"prefix", options.Prefix,
				"database", redact(options.Database),
				"version", Version,
			)

			err = srv.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				log.Error("Failed to listen and serve", "error", err)
			} else {
				log.Info("Server closed")
			}

			if err := store.Close(); err != nil {
				log.Warn("Failed to close storage", "error", err)
			}
		})

		hooks.OnStop(func() {
			if srv == nil {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), options.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("Could not shutdown the server", "error", err)
			}
		})
	})

	cli.Root().Use = "contactdesk-server"
	cli.Root().Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
	cli.Run()
}

func newServer(options *Options, handler http.Handler, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(options.Host, strconv.Itoa(options.Port)),
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

// openStorage выбирает хранилище по схеме строки подключения
func openStorage(ctx context.Context, database string) (storage.Storage, error) {
	switch {
	case strings.HasPrefix(database, "sqlite:"):
		return sqlstore.NewSQLite(ctx, strings.TrimPrefix(database, "sqlite:"))
	case strings.HasPrefix(database, "bolt:"):
		return boltdb.New(ctx, strings.TrimPrefix(database, "bolt:"))
	case strings.HasPrefix(database, "postgres://"), strings.HasPrefix(database, "postgresql://"):
		return sqlstore.NewPostgres(ctx, database)
	default:
		return nil, fmt.Errorf("unsupported database %q: use sqlite:PATH, bolt:PATH or postgres://DSN", redact(database))
	}
}

// redact скрывает пароль в строке подключения для логов
func redact(database string) string {
	scheme, rest, ok := strings.Cut(database, "://")
	if !ok {
		return database
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return database
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return database
	}
	return scheme + "://" + user + ":***@" + host
}
