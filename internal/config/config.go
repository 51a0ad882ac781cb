// Package config загружает конфигурацию клиента.
//
// Конфигурация читается из одного YAML файла, путь к которому задается
// флагом --config или переменной окружения CONTACTDESK_CONFIG. Автоматического
// поиска файла нет. Поверх файла применяются переменные окружения, затем флаги.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/contactdesk/internal/logger"
)

// Переменные окружения, которые читает клиент
const (
	EnvConfigPath = "CONTACTDESK_CONFIG"
	EnvAPIURL     = "CONTACTDESK_API_URL"
	EnvTimeout    = "CONTACTDESK_TIMEOUT"
	EnvLogLevel   = "CONTACTDESK_LOG_LEVEL"
)

// DefaultAPIURL адрес API по умолчанию
const DefaultAPIURL = "http://localhost:8000/api"

// Config конфигурация клиента
type Config struct {
	// APIURL базовый адрес удаленного API (например, http://localhost:8000/api)
	APIURL string `yaml:"api_url"`

	// Log параметры логирования. По умолчанию логи пишутся в stderr,
	// чтобы не смешиваться с выводом команд.
	Log logger.Options `yaml:"log"`

	// Timeout таймаут HTTP запроса. 0 - без таймаута.
	Timeout time.Duration `yaml:"timeout"`

	// Serialize выполняет операции над одной коллекцией строго по очереди
	Serialize bool `yaml:"serialize"`

	// UniformStatus заставляет create переключать статус коллекции
	// так же, как fetch/update/delete
	UniformStatus bool `yaml:"uniform_status"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		Timeout:       30 * time.Second,
		Serialize:     true,
		UniformStatus: true,
		Log: logger.Options{
			Level:  "warn",
			File:   "stderr",
			Format: "text",
		},
	}
}

// Path определяет путь к файлу конфигурации: флаг имеет приоритет над окружением
func Path(flagValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	return getenv(EnvConfigPath)
}

// Load читает конфигурацию из файла поверх значений по умолчанию.
// Пустой path означает "только значения по умолчанию".
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv применяет переменные окружения
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.APIURL = v
	}

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// Допускаем значение в секундах без единиц измерения
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
			}
			d = time.Duration(secs) * time.Second
		}
		c.Timeout = d
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate проверяет итоговую конфигурацию
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must use http or https scheme, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("api_url must contain a host")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}
