// Package app собирает хранилища коллекций в одно адресуемое состояние
// с единственной точкой входа Dispatch.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iudanet/contactdesk/internal/client/store"
	"github.com/iudanet/contactdesk/internal/models"
	pkgapi "github.com/iudanet/contactdesk/pkg/api"
)

// RootState снимок всех коллекций
type RootState struct {
	Contacts  store.State[models.Contact]  `json:"contacts"`
	Companies store.State[models.Company] `json:"companies"`
}

// Option настраивает App
type Option func(*config)

type config struct {
	logger        *slog.Logger
	serialize     bool
	uniformStatus bool
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSerialize включает очередь операций для каждой коллекции
func WithSerialize(enabled bool) Option {
	return func(c *config) {
		c.serialize = enabled
	}
}

// WithUniformStatus заставляет create переключать статус коллекции
func WithUniformStatus(enabled bool) Option {
	return func(c *config) {
		c.uniformStatus = enabled
	}
}

// App владеет Loop и хранилищами контактов и компаний
type App struct {
	loop        *store.Loop
	contacts    *store.Store[models.Contact, models.ContactDraft]
	companies   *store.Store[models.Company, models.CompanyDraft]
	logger      *slog.Logger
	subscribers map[int]chan store.Change
	mu          sync.Mutex
	nextID      int
	closed      bool
	closeOnce   sync.Once
}

// New создает App поверх transport
func New(transport store.Transport, opts ...Option) *App {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	a := &App{
		loop:        store.NewLoop(),
		logger:      cfg.logger,
		subscribers: make(map[int]chan store.Change),
	}

	storeOpts := store.Options{
		Logger:        cfg.logger,
		OnChange:      a.publish,
		Serialize:     cfg.serialize,
		UniformStatus: cfg.uniformStatus,
	}
	a.contacts = store.New[models.Contact, models.ContactDraft](pkgapi.CollectionContacts, transport, a.loop, storeOpts)
	a.companies = store.New[models.Company, models.CompanyDraft](pkgapi.CollectionCompanies, transport, a.loop, storeOpts)

	return a
}

// Dispatch запускает действие. Эффект наблюдается через State
// или через возвращенный Pending.
func (a *App) Dispatch(ctx context.Context, action Action) *Pending {
	if action == nil {
		return settled(nil, ErrUnknownAction)
	}
	return action.dispatch(ctx, a)
}

// State возвращает снимок обеих коллекций
func (a *App) State() RootState {
	return RootState{
		Contacts:  a.contacts.State(),
		Companies: a.companies.State(),
	}
}

// Collection возвращает описание коллекции по имени
func (a *App) Collection(name string) (store.Summary, bool) {
	switch name {
	case pkgapi.CollectionContacts:
		return a.contacts.Summary(), true
	case pkgapi.CollectionCompanies:
		return a.companies.Summary(), true
	}
	return store.Summary{}, false
}

// Subscribe подписывает на уведомления об изменениях.
// Если буфер подписчика заполнен, уведомление для него отбрасывается.
// cancel отписывает и закрывает канал.
func (a *App) Subscribe(buffer int) (<-chan store.Change, func()) {
	ch := make(chan store.Change, buffer)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		close(ch)
		return ch, func() {}
	}

	id := a.nextID
	a.nextID++
	a.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if sub, ok := a.subscribers[id]; ok {
				delete(a.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// publish вызывается в горутине Loop
func (a *App) publish(change store.Change) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ch := range a.subscribers {
		select {
		case ch <- change:
		default:
			a.logger.Debug("Subscriber is slow, change dropped",
				"collection", change.Collection,
				"op", change.Op,
				"phase", change.Phase)
		}
	}
}

// Close ждет завершения начатых операций и останавливает Loop.
// Каналы подписчиков закрываются.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.contacts.Close()
		a.companies.Close()
		a.loop.Close()

		a.mu.Lock()
		defer a.mu.Unlock()
		a.closed = true
		for id, ch := range a.subscribers {
			delete(a.subscribers, id)
			close(ch)
		}
	})
}
