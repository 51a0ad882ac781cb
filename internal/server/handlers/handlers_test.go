package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
	"github.com/iudanet/contactdesk/internal/server/storage/sqlstore"
	"github.com/iudanet/contactdesk/pkg/api"
)

var errStorageDown = errors.New("storage down")

// failingStorage возвращает errStorageDown на любой вызов
type failingStorage struct{}

func (failingStorage) ListContacts(context.Context, storage.ListQuery) ([]models.Contact, error) {
	return nil, errStorageDown
}

func (failingStorage) GetContact(context.Context, int64) (models.Contact, error) {
	return models.Contact{}, errStorageDown
}

func (failingStorage) CreateContact(context.Context, models.ContactDraft) (models.Contact, error) {
	return models.Contact{}, errStorageDown
}

func (failingStorage) UpdateContact(context.Context, models.Contact) (models.Contact, error) {
	return models.Contact{}, errStorageDown
}

func (failingStorage) DeleteContact(context.Context, int64) error { return errStorageDown }

func (failingStorage) ContactCompanies(context.Context, []int64) (map[int64]models.Company, error) {
	return nil, errStorageDown
}

func (failingStorage) ListCompanies(context.Context, storage.ListQuery) ([]models.Company, error) {
	return nil, errStorageDown
}

func (failingStorage) GetCompany(context.Context, int64) (models.Company, error) {
	return models.Company{}, errStorageDown
}

func (failingStorage) CreateCompany(context.Context, models.CompanyDraft) (models.Company, error) {
	return models.Company{}, errStorageDown
}

func (failingStorage) UpdateCompany(context.Context, models.Company) (models.Company, error) {
	return models.Company{}, errStorageDown
}

func (failingStorage) DeleteCompany(context.Context, int64) error { return errStorageDown }

func (failingStorage) Ping(context.Context) error { return errStorageDown }

func (failingStorage) Close() error { return nil }

// testServer API поверх storage и список ошибок, переданных в ErrorHandler
type testServer struct {
	api    humatest.TestAPI
	errors []error
}

func newTestServer(t *testing.T, s storage.Storage) *testServer {
	t.Helper()

	_, testAPI := humatest.New(t)
	srv := &testServer{api: testAPI}
	onError := func(_ context.Context, err error) { srv.errors = append(srv.errors, err) }

	huma.AutoRegister(testAPI, &Contacts{Store: s, ErrorHandler: onError})
	huma.AutoRegister(testAPI, &Companies{Store: s, ErrorHandler: onError})
	huma.AutoRegister(testAPI, &Health{Storage: s, ErrorHandler: onError, Version: "1.2.3"})
	return srv
}

func newSQLiteServer(t *testing.T) *testServer {
	t.Helper()

	s, err := sqlstore.NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return newTestServer(t, s)
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

func (s *testServer) createCompany(t *testing.T, name string) CompanyModel {
	t.Helper()

	resp := s.api.Post(companiesPath, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[CompanyModel](t, resp)
}

func (s *testServer) createContact(t *testing.T, body map[string]any) ContactModel {
	t.Helper()

	resp := s.api.Post(contactsPath, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[ContactModel](t, resp)
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := newSQLiteServer(t)

		resp := srv.api.Get("/health")
		require.Equal(t, http.StatusOK, resp.Code)

		body := decode[api.HealthResponse](t, resp)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "1.2.3", body.Version)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		srv := newTestServer(t, failingStorage{})

		resp := srv.api.Get("/health")
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		require.Len(t, srv.errors, 1)
	})
}

func TestHandlers_StorageFailure(t *testing.T) {
	srv := newTestServer(t, failingStorage{})

	tests := []struct {
		do   func() *httptest.ResponseRecorder
		name string
	}{
		{name: "list contacts", do: func() *httptest.ResponseRecorder { return srv.api.Get(contactsPath) }},
		{name: "get contact", do: func() *httptest.ResponseRecorder { return srv.api.Get(contactsPath + "/1") }},
		{name: "delete contact", do: func() *httptest.ResponseRecorder { return srv.api.Delete(contactsPath + "/1") }},
		{name: "list companies", do: func() *httptest.ResponseRecorder { return srv.api.Get(companiesPath) }},
		{name: "create company", do: func() *httptest.ResponseRecorder {
			return srv.api.Post(companiesPath, map[string]any{"name": "Acme"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.errors = nil

			resp := tt.do()
			assert.Equal(t, http.StatusInternalServerError, resp.Code)
			require.Len(t, srv.errors, 1)
			assert.ErrorIs(t, srv.errors[0], errStorageDown)
		})
	}
}

func TestListInput_Query(t *testing.T) {
	input := ListInput{Search: "doe", Skip: 2, Limit: 5}
	assert.Equal(t, storage.ListQuery{Search: "doe", Offset: 2, Limit: 5}, input.Query())
}

func TestValidationError(t *testing.T) {
	require.NoError(t, validationError(nil, nil))

	err := validationError(errors.New("name cannot be empty"), nil, errors.New("phone cannot be empty"))
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.GetStatus())
	assert.Contains(t, err.Error(), "name cannot be empty; phone cannot be empty")
}
