package store

import (
	"slices"

	"github.com/iudanet/contactdesk/internal/models"
)

// event фаза операции вместе с данными, которые нужны редьюсеру
type event[T models.Entity] struct {
	item   T
	op     Op
	phase  Phase
	reason string
	items  []T
	id     int64
}

// togglesStatus сообщает, переключает ли операция статус коллекции.
// create не переключает статус, если не включен uniformStatus.
func togglesStatus(op Op, uniformStatus bool) bool {
	return op != OpCreate || uniformStatus
}

// reduce применяет фазу операции к состоянию. Функция чистая:
// входной State и его Items не изменяются.
func reduce[T models.Entity](s State[T], ev event[T], uniformStatus bool) State[T] {
	toggles := togglesStatus(ev.op, uniformStatus)

	switch ev.phase {
	case PhasePending:
		if toggles {
			s.Status = StatusLoading
			s.LastError = ""
		}
		return s

	case PhaseRejected:
		if toggles {
			s.Status = StatusFailed
			s.LastError = ev.reason
		}
		return s

	case PhaseFulfilled:
		switch ev.op {
		case OpFetchAll:
			// Полная замена снимка, без слияния
			s.Items = slices.Clone(ev.items)
			if s.Items == nil {
				s.Items = []T{}
			}
		case OpCreate:
			s.Items = upsert(s.Items, ev.item)
		case OpUpdate:
			s.Items = replaceFirst(s.Items, ev.item)
		case OpDelete:
			s.Items = removeAll(s.Items, ev.id)
		}

		if toggles {
			s.Status = StatusSucceeded
			s.LastError = ""
		}
		return s
	}

	return s
}

// upsert добавляет элемент в конец. Если элемент с таким id уже есть
// (fetchAll успел вернуть созданную сущность), он заменяется на месте,
// чтобы id в коллекции оставались уникальными.
func upsert[T models.Entity](items []T, item T) []T {
	if i := indexOf(items, item.EntityID()); i >= 0 {
		return replaceAt(items, i, item)
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// replaceFirst заменяет первый элемент с совпадающим id.
// Если такого элемента нет, коллекция не меняется.
func replaceFirst[T models.Entity](items []T, item T) []T {
	i := indexOf(items, item.EntityID())
	if i < 0 {
		return items
	}
	return replaceAt(items, i, item)
}

func replaceAt[T models.Entity](items []T, i int, item T) []T {
	out := slices.Clone(items)
	out[i] = item
	return out
}

// removeAll удаляет все элементы с указанным id
func removeAll[T models.Entity](items []T, id int64) []T {
	if indexOf(items, id) < 0 {
		return items
	}
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return item.EntityID() == id
	})
}

func indexOf[T models.Entity](items []T, id int64) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.EntityID() == id
	})
}
