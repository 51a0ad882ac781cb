package store

import "context"

//go:generate moq -out transport_mock.go . Transport

// Transport определяет обращения к удаленному API коллекций.
// Реализуется api.Client; ошибки - *api.RemoteOperationError.
type Transport interface {
	List(ctx context.Context, collection string, out any) error
	Get(ctx context.Context, collection string, id int64, out any) error
	Create(ctx context.Context, collection string, in, out any) error
	Update(ctx context.Context, collection string, id int64, in, out any) error
	Delete(ctx context.Context, collection string, id int64) error
}
