// Package logger собирает *slog.Logger из параметров уровня, формата и вывода.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options параметры логгера
type Options struct {
	Level  string `yaml:"level"  doc:"log from debug, info, warn or error"`
	File   string `yaml:"file"   doc:"write logs to stdout, stderr or append to file"`
	Format string `yaml:"format" doc:"format logs as text or json" default:"text"`
}

// level разбирает уровень без учета регистра.
// Пустая строка дает nil, то есть уровень slog по умолчанию (info).
// false означает неизвестный уровень.
func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New создает логгер. Некорректные параметры не приводят к ошибке:
// логгер откатывается к значению по умолчанию и пишет предупреждение.
func New(options Options) *slog.Logger {
	return NewWithWriter(options, nil)
}

// NewWithWriter как New, но пишет в w, если File пустой или "-"
func NewWithWriter(options Options, w io.Writer) *slog.Logger {
	lvl, ok := level(options.Level)
	if !ok {
		// Повторяем с уровнем по умолчанию, предупреждение пишет уже рабочий логгер
		invalid := options.Level
		options.Level = ""
		logger := NewWithWriter(options, w)
		logger.Warn("could not parse logger level", "level", invalid)
		return logger
	}
	opts := slog.HandlerOptions{Level: lvl}

	// File: "" и "-" - w (или stdout), stdout/stderr - стандартные потоки,
	// os.DevNull - без вывода, иное - путь к файлу для дозаписи
	var output io.Writer
	switch options.File {
	case "", "-":
		output = w
		if output == nil {
			output = os.Stdout
		}
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			// Файл недоступен, пишем в w
			options.File = ""
			logger := NewWithWriter(options, w)
			logger.Warn("could not open logger file", "error", err)
			return logger
		}
		output = f
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "text", "":
		return slog.New(slog.NewTextHandler(output, &opts))
	default:
		// Неизвестный формат заменяется на text
		options.Format = "text"
		logger := NewWithWriter(options, w)
		logger.Warn("could not parse logger format")
		return logger
	}
}
