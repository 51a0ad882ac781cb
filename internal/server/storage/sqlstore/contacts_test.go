package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

func TestStorage_CreateContact(t *testing.T) {
	for name, setup := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := setup(t)

			acme, err := s.CreateCompany(ctx, models.CompanyDraft{Name: "Acme"})
			require.NoError(t, err)

			tests := []struct {
				wantErr error
				name    string
				draft   models.ContactDraft
			}{
				{
					name:  "with company",
					draft: models.ContactDraft{Name: "Jane Doe", Phone: "555-1000", City: "NYC", CompanyID: acme.ID},
				},
				{
					name:  "without company and city",
					draft: models.ContactDraft{Name: "John", Phone: "555-2000"},
				},
				{
					name:    "missing company",
					draft:   models.ContactDraft{Name: "Orphan", Phone: "555-3000", CompanyID: 999},
					wantErr: storage.ErrInvalidCompany,
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					created, err := s.CreateContact(ctx, tt.draft)
					if tt.wantErr != nil {
						require.ErrorIs(t, err, tt.wantErr)
						return
					}
					require.NoError(t, err)
					assert.Positive(t, created.ID)
					assert.Equal(t, tt.draft.WithID(created.ID), created)

					got, err := s.GetContact(ctx, created.ID)
					require.NoError(t, err)
					assert.Equal(t, created, got)
				})
			}
		})
	}
}

func TestStorage_ListContacts(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	var all []models.Contact
	for _, draft := range []models.ContactDraft{
		{Name: "Jane Doe", Phone: "1"},
		{Name: "John Smith", Phone: "2"},
		{Name: "Johanna Doe", Phone: "3"},
		{Name: "100%_real", Phone: "4"},
	} {
		c, err := s.CreateContact(ctx, draft)
		require.NoError(t, err)
		all = append(all, c)
	}

	tests := []struct {
		name  string
		query storage.ListQuery
		want  []models.Contact
	}{
		{name: "all", want: all},
		{name: "search case insensitive", query: storage.ListQuery{Search: "DOE"}, want: []models.Contact{all[0], all[2]}},
		{name: "search prefix", query: storage.ListQuery{Search: "joh"}, want: []models.Contact{all[1], all[2]}},
		{name: "wildcards are literal", query: storage.ListQuery{Search: "%_"}, want: []models.Contact{all[3]}},
		{name: "underscore is literal", query: storage.ListQuery{Search: "n_"}, want: []models.Contact{}},
		{name: "limit", query: storage.ListQuery{Limit: 2}, want: all[:2]},
		{name: "offset", query: storage.ListQuery{Offset: 3}, want: all[3:]},
		{name: "window", query: storage.ListQuery{Offset: 1, Limit: 2}, want: all[1:3]},
		{name: "offset past end", query: storage.ListQuery{Offset: 10}, want: []models.Contact{}},
		{name: "search with window", query: storage.ListQuery{Search: "doe", Offset: 1}, want: []models.Contact{all[2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListContacts(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStorage_UpdateContact(t *testing.T) {
	for name, setup := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := setup(t)

			acme, err := s.CreateCompany(ctx, models.CompanyDraft{Name: "Acme"})
			require.NoError(t, err)
			created, err := s.CreateContact(ctx, models.ContactDraft{Name: "Jane", Phone: "555", CompanyID: acme.ID})
			require.NoError(t, err)

			edited := created
			edited.Name = "Jane Doe"
			edited.City = "Boston"
			edited.CompanyID = models.NoCompany

			updated, err := s.UpdateContact(ctx, edited)
			require.NoError(t, err)
			assert.Equal(t, edited, updated)

			got, err := s.GetContact(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, edited, got)

			edited.CompanyID = 999
			_, err = s.UpdateContact(ctx, edited)
			require.ErrorIs(t, err, storage.ErrInvalidCompany)

			_, err = s.UpdateContact(ctx, models.Contact{ID: 999, Name: "Ghost", Phone: "0"})
			require.ErrorIs(t, err, storage.ErrContactNotFound)
		})
	}
}

func TestStorage_DeleteContact(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	created, err := s.CreateContact(ctx, models.ContactDraft{Name: "Jane", Phone: "555"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteContact(ctx, created.ID))

	_, err = s.GetContact(ctx, created.ID)
	require.ErrorIs(t, err, storage.ErrContactNotFound)
	require.ErrorIs(t, s.DeleteContact(ctx, created.ID), storage.ErrContactNotFound)
}

func TestStorage_ContactCompanies(t *testing.T) {
	for name, setup := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := setup(t)

			acme, err := s.CreateCompany(ctx, models.CompanyDraft{Name: "Acme"})
			require.NoError(t, err)
			globex, err := s.CreateCompany(ctx, models.CompanyDraft{Name: "Globex"})
			require.NoError(t, err)

			jane, err := s.CreateContact(ctx, models.ContactDraft{Name: "Jane", Phone: "1", CompanyID: acme.ID})
			require.NoError(t, err)
			jim, err := s.CreateContact(ctx, models.ContactDraft{Name: "Jim", Phone: "2", CompanyID: acme.ID})
			require.NoError(t, err)
			john, err := s.CreateContact(ctx, models.ContactDraft{Name: "John", Phone: "3"})
			require.NoError(t, err)

			got, err := s.ContactCompanies(ctx, []int64{jane.ID, jim.ID, john.ID, 999})
			require.NoError(t, err)
			assert.Equal(t, map[int64]models.Company{acme.ID: acme}, got)

			got, err = s.ContactCompanies(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, got)

			_, err = s.UpdateContact(ctx, models.Contact{ID: john.ID, Name: "John", Phone: "3", CompanyID: globex.ID})
			require.NoError(t, err)

			got, err = s.ContactCompanies(ctx, []int64{jane.ID, john.ID})
			require.NoError(t, err)
			assert.Equal(t, map[int64]models.Company{acme.ID: acme, globex.ID: globex}, got)
		})
	}
}
