package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/models"
)

// Options параметры Store
type Options struct {
	// Logger логгер операций; по умолчанию логи отбрасываются
	Logger *slog.Logger

	// OnChange вызывается в горутине Loop после каждой примененной фазы.
	// Не должен блокироваться.
	OnChange func(Change)

	// Serialize выполняет операции коллекции по одной в порядке вызова.
	// Без него перекрывающиеся операции не упорядочиваются:
	// побеждает та, что завершилась позже.
	Serialize bool

	// UniformStatus заставляет create переключать статус коллекции
	// (loading/succeeded/failed), как это делают fetch/update/delete
	UniformStatus bool
}

// Store хранит локальную копию одной коллекции и синхронизирует ее
// с удаленным API. T - тип сущности, D - черновик для создания (без ID).
//
// state изменяется только в горутине loop; читатели получают
// неизменяемые снимки через snapshot.
type Store[T models.Entity, D any] struct {
	transport  Transport
	loop       *Loop
	queue      *queue
	logger     *slog.Logger
	onChange   func(Change)
	snapshot   atomic.Pointer[State[T]]
	collection string
	state      State[T]
	inflight   sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	uniform    bool
}

// New создает Store для коллекции collection.
// Коллекция создается пустой со статусом idle.
func New[T models.Entity, D any](collection string, transport Transport, loop *Loop, opts Options) *Store[T, D] {
	s := &Store[T, D]{
		collection: collection,
		transport:  transport,
		loop:       loop,
		logger:     opts.Logger,
		onChange:   opts.OnChange,
		uniform:    opts.UniformStatus,
		state: State[T]{
			Status: StatusIdle,
			Items:  []T{},
		},
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.logger = s.logger.With("collection", collection)

	if opts.Serialize {
		s.queue = newQueue()
	}

	initial := s.state
	s.snapshot.Store(&initial)

	return s
}

// Collection возвращает имя коллекции
func (s *Store[T, D]) Collection() string {
	return s.collection
}

// State возвращает текущий снимок состояния. Items - копия.
func (s *Store[T, D]) State() State[T] {
	return s.snapshot.Load().clone()
}

// Summary возвращает снимок без элементов
func (s *Store[T, D]) Summary() Summary {
	snap := s.snapshot.Load()
	return Summary{
		Collection: s.collection,
		Status:     snap.Status,
		LastError:  snap.LastError,
		Len:        len(snap.Items),
	}
}

// StartFetchAll запускает загрузку всей коллекции.
// pending: loading; fulfilled: succeeded, Items заменяются целиком;
// rejected: failed, LastError, Items не меняются.
func (s *Store[T, D]) StartFetchAll(ctx context.Context) *Pending[[]T] {
	return start(ctx, s, OpFetchAll, func(ctx context.Context) ([]T, event[T], error) {
		var items []T
		if err := s.transport.List(ctx, s.collection, &items); err != nil {
			return nil, event[T]{}, err
		}
		if items == nil {
			items = []T{}
		}
		return items, event[T]{items: items}, nil
	})
}

// StartCreate запускает создание сущности из черновика.
// Оптимистичной вставки нет: сущность с ID от сервера добавляется
// в конец коллекции только после ответа.
func (s *Store[T, D]) StartCreate(ctx context.Context, draft D) *Pending[T] {
	return start(ctx, s, OpCreate, func(ctx context.Context) (T, event[T], error) {
		var created T
		if err := s.transport.Create(ctx, s.collection, draft, &created); err != nil {
			return created, event[T]{}, err
		}
		return created, event[T]{item: created}, nil
	})
}

// StartUpdate запускает замену сущности по ID.
// При успехе первый элемент с тем же ID заменяется ответом сервера;
// если элемента нет, коллекция не меняется.
func (s *Store[T, D]) StartUpdate(ctx context.Context, entity T) *Pending[T] {
	return start(ctx, s, OpUpdate, func(ctx context.Context) (T, event[T], error) {
		var updated T
		if err := s.transport.Update(ctx, s.collection, entity.EntityID(), entity, &updated); err != nil {
			return updated, event[T]{}, err
		}
		return updated, event[T]{item: updated}, nil
	})
}

// StartDelete запускает удаление сущности по ID.
// При успехе из коллекции удаляются все элементы с этим ID.
func (s *Store[T, D]) StartDelete(ctx context.Context, id int64) *Pending[int64] {
	return start(ctx, s, OpDelete, func(ctx context.Context) (int64, event[T], error) {
		if err := s.transport.Delete(ctx, s.collection, id); err != nil {
			return id, event[T]{}, err
		}
		return id, event[T]{id: id}, nil
	})
}

// FetchAll загружает коллекцию и ждет результата
func (s *Store[T, D]) FetchAll(ctx context.Context) ([]T, error) {
	return s.StartFetchAll(ctx).Wait(ctx)
}

// Create создает сущность и ждет результата
func (s *Store[T, D]) Create(ctx context.Context, draft D) (T, error) {
	return s.StartCreate(ctx, draft).Wait(ctx)
}

// Update обновляет сущность и ждет результата
func (s *Store[T, D]) Update(ctx context.Context, entity T) (T, error) {
	return s.StartUpdate(ctx, entity).Wait(ctx)
}

// Delete удаляет сущность и ждет результата
func (s *Store[T, D]) Delete(ctx context.Context, id int64) error {
	_, err := s.StartDelete(ctx, id).Wait(ctx)
	return err
}

// Get получает одну сущность с сервера, не изменяя состояние коллекции
func (s *Store[T, D]) Get(ctx context.Context, id int64) (T, error) {
	var entity T
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return entity, ErrClosed
	}
	err := s.transport.Get(ctx, s.collection, id, &entity)
	return entity, err
}

// Close перестает принимать операции и ждет завершения начатых.
// Loop закрывает владелец.
func (s *Store[T, D]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.inflight.Wait()
	if s.queue != nil {
		s.queue.close()
	}
}

// call выполняет удаленную часть операции и возвращает результат
// для вызывающего и событие для редьюсера
type call[T models.Entity, R any] func(ctx context.Context) (R, event[T], error)

// start запускает операцию: сразу или через очередь коллекции.
// Без очереди фаза pending применяется до возврата из start,
// с очередью - когда операция выходит из очереди.
// Операция не отменяется вместе с ctx и всегда применяет свой результат.
func start[T models.Entity, D, R any](ctx context.Context, s *Store[T, D], op Op, fn call[T, R]) *Pending[R] {
	p := newPending[R]()
	var zero R

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		p.resolve(zero, ErrClosed)
		return p
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	if s.queue == nil {
		if err := s.apply(event[T]{op: op, phase: PhasePending}); err != nil {
			s.inflight.Done()
			p.resolve(zero, err)
			return p
		}
		go func() {
			defer s.inflight.Done()
			p.resolve(settle(ctx, s, op, fn))
		}()
		return p
	}

	job := func() {
		defer s.inflight.Done()
		if err := s.apply(event[T]{op: op, phase: PhasePending}); err != nil {
			p.resolve(zero, err)
			return
		}
		p.resolve(settle(ctx, s, op, fn))
	}
	if err := s.queue.submit(job); err != nil {
		s.inflight.Done()
		p.resolve(zero, err)
	}
	return p
}

// settle выполняет удаленный вызов и применяет фазу fulfilled или rejected
func settle[T models.Entity, D, R any](ctx context.Context, s *Store[T, D], op Op, fn call[T, R]) (R, error) {
	var zero R

	started := time.Now()
	value, ev, err := fn(ctx)
	if err != nil {
		s.logger.Warn("Operation rejected",
			"op", op,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err)

		if applyErr := s.apply(event[T]{op: op, phase: PhaseRejected, reason: api.Reason(err)}); applyErr != nil {
			return zero, applyErr
		}
		return zero, err
	}

	ev.op = op
	ev.phase = PhaseFulfilled
	if err := s.apply(ev); err != nil {
		return zero, err
	}

	s.logger.Debug("Operation fulfilled",
		"op", op,
		"duration_ms", time.Since(started).Milliseconds())

	return value, nil
}

// apply применяет событие в горутине loop и публикует новый снимок
func (s *Store[T, D]) apply(ev event[T]) error {
	return s.loop.Do(func() {
		s.state = reduce(s.state, ev, s.uniform)

		snap := s.state
		s.snapshot.Store(&snap)

		if s.onChange != nil {
			s.onChange(Change{
				Collection: s.collection,
				Op:         ev.op,
				Phase:      ev.phase,
				Status:     snap.Status,
				LastError:  snap.LastError,
				Len:        len(snap.Items),
			})
		}
	})
}
