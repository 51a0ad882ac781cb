package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/contactdesk/pkg/api"
)

// RemoteOperationError описывает неуспешную операцию с удаленным API:
// ответ с кодом вне 2xx или сбой транспорта. Других видов ошибок
// транспортный слой не возвращает.
type RemoteOperationError struct {
	// Err исходная ошибка транспорта (nil для ответов с кодом вне 2xx)
	Err error
	// Op операция: list, get, create, update, delete
	Op string
	// Collection имя коллекции (contacts, companies)
	Collection string
	// Message человекочитаемая причина
	Message string
	// Body тело ответа сервера, если оно было
	Body json.RawMessage
	// StatusCode HTTP статус, 0 при сбое транспорта
	StatusCode int
}

// Error реализует интерфейс error
func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Collection, e.Message)
}

// Unwrap возвращает исходную ошибку транспорта
func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}

// Reason возвращает причину без префикса операции; это значение
// попадает в LastError коллекции
func (e *RemoteOperationError) Reason() string {
	return e.Message
}

// ServerError декодирует тело ответа как api.ErrorResponse
func (e *RemoteOperationError) ServerError() (api.ErrorResponse, bool) {
	var resp api.ErrorResponse
	if len(e.Body) == 0 {
		return resp, false
	}
	if err := json.Unmarshal(e.Body, &resp); err != nil {
		return resp, false
	}
	return resp, true
}

// AsRemoteError извлекает *RemoteOperationError из цепочки ошибок
func AsRemoteError(err error) (*RemoteOperationError, bool) {
	var remoteErr *RemoteOperationError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}

// Reason возвращает причину ошибки для отображения: Reason() удаленной
// ошибки или текст любой другой
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if remoteErr, ok := AsRemoteError(err); ok {
		return remoteErr.Reason()
	}
	return err.Error()
}
