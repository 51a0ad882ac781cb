// Package handlers реализует REST API контактов и компаний на huma.
// Обработчики регистрируются через huma.AutoRegister методами Register*.
package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/iudanet/contactdesk/internal/server/storage"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

// handlerWithErrorHandler вызывает do для каждой ошибки обработчика
func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}

// ListInput параметры выборки списка
type ListInput struct {
	Search string `query:"search" doc:"case-insensitive name filter"`
	Skip   int    `query:"skip"   doc:"number of records to skip"              minimum:"0" default:"0"`
	Limit  int    `query:"limit"  doc:"maximum number of records, 0 for all" minimum:"0" default:"0"`
}

// Query переводит параметры запроса в запрос к хранилищу
func (i *ListInput) Query() storage.ListQuery {
	return storage.ListQuery{Search: i.Search, Offset: i.Skip, Limit: i.Limit}
}

// IDInput идентификатор сущности из пути
type IDInput struct {
	ID int64 `path:"id" doc:"ID of the entity" minimum:"1"`
}

// validationError собирает ошибки проверки полей в ответ 422, nil если ошибок нет
func validationError(errs ...error) error {
	var (
		failed []error
		msgs   []string
	)
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
			msgs = append(msgs, err.Error())
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return huma.Error422UnprocessableEntity(strings.Join(msgs, "; "), failed...)
}
