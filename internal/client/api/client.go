package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/contactdesk/pkg/api"
)

// Операции транспорта, попадают в RemoteOperationError.Op
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// maxErrorBody ограничивает тело ответа, сохраняемое в ошибке
const maxErrorBody = 64 << 10

// Client представляет HTTP клиент удаленного API коллекций
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    *time.Duration
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает собственный http.Client, nil оставляет клиент по умолчанию.
// Сам httpClient не изменяется, WithTimeout применяется к его копии.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout задает таймаут HTTP запроса (0 - без таймаута)
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает новый API клиент.
// baseURL передается как есть, например "http://localhost:8000/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.New(slog.DiscardHandler),
		httpClient: &http.Client{
			// Ограничиваем количество редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout != nil {
		httpClient := *c.httpClient
		httpClient.Timeout = *c.timeout
		c.httpClient = &httpClient
	}

	return c
}

// BaseURL возвращает базовый адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List получает всю коллекцию: GET /{collection}
func (c *Client) List(ctx context.Context, collection string, out any) error {
	return c.doRequest(ctx, OpList, collection, http.MethodGet, "/"+collection, nil, out)
}

// Get получает одну сущность: GET /{collection}/{id}
func (c *Client) Get(ctx context.Context, collection string, id int64, out any) error {
	return c.doRequest(ctx, OpGet, collection, http.MethodGet, itemPath(collection, id), nil, out)
}

// Create создает сущность: POST /{collection}
func (c *Client) Create(ctx context.Context, collection string, in, out any) error {
	return c.doRequest(ctx, OpCreate, collection, http.MethodPost, "/"+collection, in, out)
}

// Update заменяет сущность: PUT /{collection}/{id}
func (c *Client) Update(ctx context.Context, collection string, id int64, in, out any) error {
	return c.doRequest(ctx, OpUpdate, collection, http.MethodPut, itemPath(collection, id), in, out)
}

// Delete удаляет сущность: DELETE /{collection}/{id}. Тело ответа не требуется.
func (c *Client) Delete(ctx context.Context, collection string, id int64) error {
	return c.doRequest(ctx, OpDelete, collection, http.MethodDelete, itemPath(collection, id), nil, nil)
}

func itemPath(collection string, id int64) string {
	return "/" + collection + "/" + strconv.FormatInt(id, 10)
}

// doRequest выполняет HTTP запрос. Любая неудача возвращается
// как *RemoteOperationError.
func (c *Client) doRequest(ctx context.Context, op, collection, method, path string, body, result any) error {
	fail := func(err error, format string, args ...any) error {
		return &RemoteOperationError{
			Op:         op,
			Collection: collection,
			Message:    fmt.Sprintf(format, args...),
			Err:        err,
		}
	}

	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fail(err, "failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fail(err, "failed to create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Request failed", "method", method, "url", url, "error", err)
		return fail(err, "request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("Request completed",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.statusError(op, collection, resp.StatusCode, respBody)
	}

	if result == nil {
		// Тело ответа не нужно, но дочитываем его для переиспользования соединения
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(err, "failed to read response body: %v", err)
	}

	// Декодируем успешный ответ
	if err := json.Unmarshal(respBody, result); err != nil {
		return fail(err, "failed to decode response: %v", err)
	}

	return nil
}

// statusError формирует ошибку для ответа с кодом вне 2xx.
// Причина берется из тела ответа сервера, если его удалось разобрать.
func (c *Client) statusError(op, collection string, status int, respBody []byte) error {
	remoteErr := &RemoteOperationError{
		Op:         op,
		Collection: collection,
		StatusCode: status,
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) > 0 {
		remoteErr.Body = json.RawMessage(trimmed)
		if !json.Valid(trimmed) {
			// Сохраняем текстовое тело как JSON строку, чтобы Body оставался валидным JSON
			quoted, _ := json.Marshal(string(trimmed))
			remoteErr.Body = quoted
		}
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(trimmed, &errResp); err == nil && errResp.Reason() != "" {
		remoteErr.Message = fmt.Sprintf("server error (%d): %s", status, errResp.Reason())
		return remoteErr
	}

	if len(trimmed) > 0 {
		remoteErr.Message = fmt.Sprintf("request failed with status %d: %s", status, string(trimmed))
		return remoteErr
	}

	remoteErr.Message = fmt.Sprintf("request failed with status %d: %s", status, http.StatusText(status))
	return remoteErr
}
