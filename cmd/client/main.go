package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/client/app"
	"github.com/iudanet/contactdesk/internal/client/cli"
	"github.com/iudanet/contactdesk/internal/client/iocli"
	"github.com/iudanet/contactdesk/internal/config"
	"github.com/iudanet/contactdesk/internal/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file (env: "+config.EnvConfigPath+")")
	serverURL := flag.String("server", "", "API base URL (default: "+config.DefaultAPIURL+")")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// Show version and exit if requested
	args := flag.Args()
	if *showVersion || (len(args) > 0 && args[0] == "version") {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath, *serverURL, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Создаем API клиент
	apiClient := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
	)

	a := app.New(apiClient,
		app.WithLogger(log),
		app.WithSerialize(cfg.Serialize),
		app.WithUniformStatus(cfg.UniformStatus),
	)

	err = cli.New(stdio, a).Run(ctx, args)

	// Close дожидается начатых операций, даже если ожидание прервано сигналом
	a.Close()
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig собирает конфигурацию: файл, окружение, флаги
func loadConfig(path, serverURL, logLevel string) (config.Config, error) {
	cfg, err := config.Load(config.Path(path, os.Getenv))
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if serverURL != "" {
		cfg.APIURL = serverURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printVersion() {
	fmt.Printf("ContactDesk Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
