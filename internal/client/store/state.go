package store

import (
	"slices"

	"github.com/iudanet/contactdesk/internal/models"
)

// Status состояние жизненного цикла запросов коллекции
type Status string

const (
	StatusIdle      Status = "idle"      // коллекция еще не загружалась
	StatusLoading   Status = "loading"   // выполняется операция, переключающая статус
	StatusSucceeded Status = "succeeded" // последняя такая операция завершилась успешно
	StatusFailed    Status = "failed"    // последняя такая операция завершилась ошибкой
)

// Op операция над коллекцией
type Op string

const (
	OpFetchAll Op = "fetchAll"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

// Phase фаза асинхронной операции
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// State снимок состояния коллекции.
// LastError не пустой только при Status == StatusFailed.
type State[T models.Entity] struct {
	Status    Status `json:"status"`
	LastError string `json:"last_error,omitempty"`
	Items     []T    `json:"items"`
}

// Len возвращает количество элементов коллекции
func (s State[T]) Len() int {
	return len(s.Items)
}

// Find возвращает первый элемент с указанным id
func (s State[T]) Find(id int64) (T, bool) {
	for _, item := range s.Items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// clone возвращает копию снимка, которую вызывающий может изменять
func (s State[T]) clone() State[T] {
	s.Items = slices.Clone(s.Items)
	return s
}

// Summary описание коллекции без элементов, адресуемое по имени
type Summary struct {
	Collection string `json:"collection"`
	Status     Status `json:"status"`
	LastError  string `json:"last_error,omitempty"`
	Len        int    `json:"len"`
}

// Change уведомление о примененной фазе операции
type Change struct {
	Collection string
	Op         Op
	Phase      Phase
	Status     Status
	LastError  string
	Len        int
}
