package store

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/contactdesk/internal/client/api"
	"github.com/iudanet/contactdesk/internal/models"
)

func newContactStore(t *testing.T, transport Transport, opts Options) *Store[models.Contact, models.ContactDraft] {
	t.Helper()
	loop := NewLoop()
	s := New[models.Contact, models.ContactDraft]("contacts", transport, loop, opts)
	t.Cleanup(func() {
		s.Close()
		loop.Close()
	})
	return s
}

func newCompanyStore(t *testing.T, transport Transport, opts Options) *Store[models.Company, models.CompanyDraft] {
	t.Helper()
	loop := NewLoop()
	s := New[models.Company, models.CompanyDraft]("companies", transport, loop, opts)
	t.Cleanup(func() {
		s.Close()
		loop.Close()
	})
	return s
}

func serverError(op string) error {
	return &api.RemoteOperationError{
		Op:         op,
		Collection: "contacts",
		Message:    "server error (500): internal error",
		StatusCode: http.StatusInternalServerError,
	}
}

func listing(items ...models.Contact) func(ctx context.Context, collection string, out any) error {
	return func(ctx context.Context, collection string, out any) error {
		*out.(*[]models.Contact) = append([]models.Contact(nil), items...)
		return nil
	}
}

var jane = models.Contact{ID: 5, Name: "Jane", Phone: "555", City: "NYC", CompanyID: 1}

func TestStore_InitialState(t *testing.T) {
	s := newContactStore(t, &TransportMock{}, Options{})

	state := s.State()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, state.LastError)
	assert.NotNil(t, state.Items)
	assert.Empty(t, state.Items)

	assert.Equal(t, Summary{Collection: "contacts", Status: StatusIdle}, s.Summary())
}

func TestStore_FetchCompanies(t *testing.T) {
	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			assert.Equal(t, "companies", collection)
			*out.(*[]models.Company) = []models.Company{{ID: 1, Name: "Acme"}}
			return nil
		},
	}
	s := newCompanyStore(t, transport, Options{})

	items, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Company{{ID: 1, Name: "Acme"}}, items)

	assert.Equal(t, State[models.Company]{
		Status: StatusSucceeded,
		Items:  []models.Company{{ID: 1, Name: "Acme"}},
	}, s.State())
}

func TestStore_FetchReplacesWithoutAccumulating(t *testing.T) {
	responses := [][]models.Contact{
		{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}},
		{{ID: 3, Name: "Cid"}},
		{},
	}
	call := 0
	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			*out.(*[]models.Contact) = responses[call]
			call++
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	for _, want := range responses {
		_, err := s.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, s.State().Items)
	}
}

func TestStore_FetchNullBody(t *testing.T) {
	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	items, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.NotNil(t, s.State().Items)
}

func TestStore_CreateAppends(t *testing.T) {
	transport := &TransportMock{
		ListFunc: listing(models.Contact{ID: 1, Name: "Ann"}),
		CreateFunc: func(ctx context.Context, collection string, in, out any) error {
			draft := in.(models.ContactDraft)
			*out.(*models.Contact) = draft.WithID(5)
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	created, err := s.Create(context.Background(), jane.Draft())
	require.NoError(t, err)
	assert.Equal(t, jane, created)

	assert.Equal(t, []models.Contact{{ID: 1, Name: "Ann"}, jane}, s.State().Items)
}

func TestStore_CreateThenFetchKeepsSingleCopy(t *testing.T) {
	transport := &TransportMock{
		ListFunc: listing(jane),
		CreateFunc: func(ctx context.Context, collection string, in, out any) error {
			*out.(*models.Contact) = jane
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.Create(context.Background(), jane.Draft())
	require.NoError(t, err)
	_, err = s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{jane}, s.State().Items)

	// Повторный ответ create с тем же id не дублирует элемент
	_, err = s.Create(context.Background(), jane.Draft())
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{jane}, s.State().Items)
}

func TestStore_CreateRejectedKeepsStatus(t *testing.T) {
	transport := &TransportMock{
		ListFunc: listing(models.Contact{ID: 1, Name: "Ann"}),
		CreateFunc: func(ctx context.Context, collection string, in, out any) error {
			return serverError(api.OpCreate)
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), jane.Draft())
	require.Error(t, err)

	remoteErr, ok := api.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Status)
	assert.Empty(t, state.LastError)
	assert.Equal(t, []models.Contact{{ID: 1, Name: "Ann"}}, state.Items)
}

func TestStore_CreateUniformStatus(t *testing.T) {
	transport := &TransportMock{
		CreateFunc: func(ctx context.Context, collection string, in, out any) error {
			return serverError(api.OpCreate)
		},
	}
	s := newContactStore(t, transport, Options{UniformStatus: true})

	_, err := s.Create(context.Background(), jane.Draft())
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "server error (500): internal error", state.LastError)
	assert.Empty(t, state.Items)
}

func TestStore_UpdateInPlace(t *testing.T) {
	updated := jane
	updated.Name = "Jane Doe"

	transport := &TransportMock{
		ListFunc: listing(models.Contact{ID: 1, Name: "Ann"}, jane, models.Contact{ID: 7, Name: "Bob"}),
		UpdateFunc: func(ctx context.Context, collection string, id int64, in, out any) error {
			assert.Equal(t, int64(5), id)
			*out.(*models.Contact) = in.(models.Contact)
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	got, err := s.Update(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	state := s.State()
	assert.Equal(t, StatusSucceeded, state.Status)
	assert.Equal(t, []models.Contact{{ID: 1, Name: "Ann"}, updated, {ID: 7, Name: "Bob"}}, state.Items)
}

func TestStore_UpdateMissingDoesNotInsert(t *testing.T) {
	transport := &TransportMock{
		ListFunc: listing(models.Contact{ID: 1, Name: "Ann"}),
		UpdateFunc: func(ctx context.Context, collection string, id int64, in, out any) error {
			*out.(*models.Contact) = in.(models.Contact)
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	_, err = s.Update(context.Background(), jane)
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{{ID: 1, Name: "Ann"}}, s.State().Items)
}

func TestStore_Delete(t *testing.T) {
	transport := &TransportMock{
		ListFunc: listing(models.Contact{ID: 1, Name: "Ann"}, jane),
		DeleteFunc: func(ctx context.Context, collection string, id int64) error {
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	before := s.State().Len()

	require.NoError(t, s.Delete(context.Background(), 5))

	state := s.State()
	assert.Equal(t, before-1, state.Len())
	assert.Equal(t, StatusSucceeded, state.Status)
	_, found := state.Find(5)
	assert.False(t, found)

	// Отсутствующий id: без ошибки и без изменений
	require.NoError(t, s.Delete(context.Background(), 5))
	assert.Equal(t, []models.Contact{{ID: 1, Name: "Ann"}}, s.State().Items)
}

func TestStore_DeleteRejectedForMissingID(t *testing.T) {
	transport := &TransportMock{
		DeleteFunc: func(ctx context.Context, collection string, id int64) error {
			return &api.RemoteOperationError{
				Op:         api.OpDelete,
				Collection: collection,
				Message:    "server error (404): Contact not found",
				StatusCode: http.StatusNotFound,
			}
		},
	}
	s := newContactStore(t, transport, Options{})

	err := s.Delete(context.Background(), 99)
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "server error (404): Contact not found", state.LastError)
}

func TestStore_RejectionLeavesItems(t *testing.T) {
	seed := []models.Contact{{ID: 1, Name: "Ann"}, jane}

	tests := []struct {
		name string
		run  func(s *Store[models.Contact, models.ContactDraft]) error
	}{
		{
			name: "fetch",
			run: func(s *Store[models.Contact, models.ContactDraft]) error {
				_, err := s.FetchAll(context.Background())
				return err
			},
		},
		{
			name: "update",
			run: func(s *Store[models.Contact, models.ContactDraft]) error {
				_, err := s.Update(context.Background(), models.Contact{ID: 5, Name: "X"})
				return err
			},
		},
		{
			name: "delete",
			run: func(s *Store[models.Contact, models.ContactDraft]) error {
				return s.Delete(context.Background(), 5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := false
			transport := &TransportMock{
				ListFunc: func(ctx context.Context, collection string, out any) error {
					if fail {
						return serverError(api.OpList)
					}
					*out.(*[]models.Contact) = seed
					return nil
				},
				UpdateFunc: func(ctx context.Context, collection string, id int64, in, out any) error {
					return serverError(api.OpUpdate)
				},
				DeleteFunc: func(ctx context.Context, collection string, id int64) error {
					return &api.RemoteOperationError{
						Op:         api.OpDelete,
						Collection: collection,
						Err:        errors.New("connection refused"),
						Message:    "connection refused",
					}
				},
			}
			s := newContactStore(t, transport, Options{})

			_, err := s.FetchAll(context.Background())
			require.NoError(t, err)
			fail = true

			err = tt.run(s)
			require.Error(t, err)

			state := s.State()
			assert.Equal(t, StatusFailed, state.Status)
			assert.NotEmpty(t, state.LastError)
			assert.Equal(t, api.Reason(err), state.LastError)
			assert.Equal(t, seed, state.Items)
		})
	}
}

func TestStore_PendingPhaseVisible(t *testing.T) {
	release := make(chan struct{})
	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			<-release
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	p := s.StartFetchAll(context.Background())
	assert.Equal(t, StatusLoading, s.State().Status)

	close(release)
	_, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, s.State().Status)
}

func TestStore_RunsToCompletionAfterCancel(t *testing.T) {
	release := make(chan struct{})
	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			<-release
			assert.NoError(t, ctx.Err())
			*out.(*[]models.Contact) = []models.Contact{jane}
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	p := s.StartFetchAll(ctx)
	cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	<-p.Done()
	assert.Equal(t, []models.Contact{jane}, s.State().Items)
	assert.Equal(t, StatusSucceeded, s.State().Status)
}

func TestStore_LastSettledWins(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	transport := &TransportMock{
		ListFunc: listing(jane),
		UpdateFunc: func(ctx context.Context, collection string, id int64, in, out any) error {
			c := in.(models.Contact)
			if c.Name == "First" {
				<-first
			} else {
				<-second
			}
			*out.(*models.Contact) = c
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	p1 := s.StartUpdate(context.Background(), models.Contact{ID: 5, Name: "First"})
	p2 := s.StartUpdate(context.Background(), models.Contact{ID: 5, Name: "Second"})

	close(second)
	<-p2.Done()
	close(first)
	<-p1.Done()

	assert.Equal(t, "First", s.State().Items[0].Name)
}

func TestStore_SerializeKeepsOrder(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   []string
		release = make(chan struct{})
	)
	transport := &TransportMock{
		ListFunc: listing(jane),
		UpdateFunc: func(ctx context.Context, collection string, id int64, in, out any) error {
			c := in.(models.Contact)
			if c.Name == "First" {
				<-release
			}
			mu.Lock()
			calls = append(calls, c.Name)
			mu.Unlock()
			*out.(*models.Contact) = c
			return nil
		},
	}
	s := newContactStore(t, transport, Options{Serialize: true})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	p1 := s.StartUpdate(context.Background(), models.Contact{ID: 5, Name: "First"})
	p2 := s.StartUpdate(context.Background(), models.Contact{ID: 5, Name: "Second"})

	select {
	case <-p2.Done():
		t.Fatal("second update must wait for the first")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	_, err = p2.Wait(context.Background())
	require.NoError(t, err)
	<-p1.Done()

	assert.Equal(t, []string{"First", "Second"}, calls)
	assert.Equal(t, "Second", s.State().Items[0].Name)
}

func TestStore_OnChange(t *testing.T) {
	var (
		mu      sync.Mutex
		changes []Change
	)
	transport := &TransportMock{
		ListFunc: listing(jane),
		CreateFunc: func(ctx context.Context, collection string, in, out any) error {
			return serverError(api.OpCreate)
		},
	}
	s := newContactStore(t, transport, Options{
		OnChange: func(c Change) {
			mu.Lock()
			changes = append(changes, c)
			mu.Unlock()
		},
	})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	_, err = s.Create(context.Background(), jane.Draft())
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Change{
		{Collection: "contacts", Op: OpFetchAll, Phase: PhasePending, Status: StatusLoading},
		{Collection: "contacts", Op: OpFetchAll, Phase: PhaseFulfilled, Status: StatusSucceeded, Len: 1},
		{Collection: "contacts", Op: OpCreate, Phase: PhasePending, Status: StatusSucceeded, Len: 1},
		{Collection: "contacts", Op: OpCreate, Phase: PhaseRejected, Status: StatusSucceeded, Len: 1},
	}, changes)
}

func TestStore_GetDoesNotTouchState(t *testing.T) {
	transport := &TransportMock{
		GetFunc: func(ctx context.Context, collection string, id int64, out any) error {
			*out.(*models.Contact) = jane
			return nil
		},
	}
	s := newContactStore(t, transport, Options{})

	got, err := s.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, jane, got)
	assert.Equal(t, StatusIdle, s.State().Status)
	assert.Empty(t, s.State().Items)
}

func TestStore_StateIsCopy(t *testing.T) {
	s := newContactStore(t, &TransportMock{ListFunc: listing(jane)}, Options{})

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	state := s.State()
	state.Items[0].Name = "Mutated"
	assert.Equal(t, "Jane", s.State().Items[0].Name)
}

func TestStore_Close(t *testing.T) {
	release := make(chan struct{})
	loop := NewLoop()
	defer loop.Close()

	transport := &TransportMock{
		ListFunc: func(ctx context.Context, collection string, out any) error {
			<-release
			*out.(*[]models.Contact) = []models.Contact{jane}
			return nil
		},
	}
	s := New[models.Contact, models.ContactDraft]("contacts", transport, loop, Options{Serialize: true})

	p := s.StartFetchAll(context.Background())

	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close must wait for in-flight operations")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-closed

	_, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{jane}, s.State().Items)

	_, err = s.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrClosed)
}
