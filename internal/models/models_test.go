package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name  string
		value string
		query string
		want  bool
	}{
		{name: "empty query", value: "Jane", query: "", want: true},
		{name: "exact", value: "Jane", query: "Jane", want: true},
		{name: "case insensitive", value: "Jane Doe", query: "DOE", want: true},
		{name: "substring", value: "Acme Corp", query: "me c", want: true},
		{name: "no match", value: "Jane", query: "john", want: false},
		{name: "cyrillic", value: "Иван Петров", query: "петров", want: true},
		{name: "accented upper", value: "École Normale", query: "éCOLE", want: true},
		{name: "no multi-rune folding", value: "Straße", query: "STRASSE", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameMatches(tt.value, tt.query))
		})
	}
}

// TestContact_JSON проверяет, что company_id=0 и пустой city не попадают в JSON
func TestContact_JSON(t *testing.T) {
	draft := ContactDraft{Name: "Jane", Phone: "555"}

	data, err := json.Marshal(draft)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jane","phone":"555"}`, string(data))

	contact := draft.WithID(5)
	contact.CompanyID = 1
	contact.City = "NYC"

	data, err = json.Marshal(contact)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"name":"Jane","phone":"555","city":"NYC","company_id":1}`, string(data))
}

func TestContact_Draft(t *testing.T) {
	contact := Contact{ID: 7, Name: "Jane", Phone: "555", City: "NYC", CompanyID: 2}

	draft := contact.Draft()
	assert.Equal(t, ContactDraft{Name: "Jane", Phone: "555", City: "NYC", CompanyID: 2}, draft)
	assert.Equal(t, contact, draft.WithID(7))
	assert.True(t, contact.HasCompany())
	assert.False(t, Contact{}.HasCompany())
}

func TestCompany_Draft(t *testing.T) {
	company := Company{ID: 1, Name: "Acme"}

	assert.Equal(t, int64(1), company.EntityID())
	assert.Equal(t, "Acme", company.EntityName())
	assert.Equal(t, company, company.Draft().WithID(1))
}
