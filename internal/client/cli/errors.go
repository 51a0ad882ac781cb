package cli

import (
	"errors"

	"github.com/iudanet/contactdesk/internal/client/api"
)

var (
	ErrUsage       = errors.New("invalid usage")
	ErrNotFound    = errors.New("not found")
	ErrNeedConfirm = errors.New("deletion requires confirmation: rerun with --yes")
)

// operationError сообщение для пользователя поверх ошибки операции
type operationError struct {
	err    error
	action string
	reason string
}

func (e *operationError) Error() string {
	return "failed to " + e.action + ": " + e.reason
}

func (e *operationError) Unwrap() error {
	return e.err
}

// failed оборачивает ошибку операции; reason совпадает с LastError коллекции
func failed(action string, err error) error {
	return &operationError{
		action: action,
		reason: api.Reason(err),
		err:    err,
	}
}
