package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/contactdesk/internal/models"
)

var (
	acme   = models.Company{ID: 1, Name: "Acme"}
	globex = models.Company{ID: 2, Name: "Globex"}

	jane  = models.Contact{ID: 5, Name: "Jane", Phone: "555", City: "NYC", CompanyID: 1}
	john  = models.Contact{ID: 6, Name: "John Smith", Phone: "556", CompanyID: 2}
	orph  = models.Contact{ID: 7, Name: "Orphan", Phone: "557", CompanyID: 99}
	loner = models.Contact{ID: 8, Name: "loner", Phone: "558"}
)

func TestFilterByName(t *testing.T) {
	contacts := []models.Contact{jane, john, orph, loner}

	tests := []struct {
		name  string
		query string
		want  []models.Contact
	}{
		{name: "empty query returns everything", query: "", want: contacts},
		{name: "case insensitive", query: "JA", want: []models.Contact{jane}},
		{name: "substring in the middle", query: "smi", want: []models.Contact{john}},
		{name: "several matches keep order", query: "o", want: []models.Contact{john, orph, loner}},
		{name: "no matches", query: "zzz", want: []models.Contact{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterByName(contacts, tt.query))
		})
	}
}

func TestFilterByName_Companies(t *testing.T) {
	got := FilterByName([]models.Company{acme, globex}, "glo")
	assert.Equal(t, []models.Company{globex}, got)
}

func TestFilterByCompany(t *testing.T) {
	contacts := []models.Contact{jane, john, orph, loner}

	assert.Equal(t, contacts, FilterByCompany(contacts, models.NoCompany))
	assert.Equal(t, []models.Contact{john}, FilterByCompany(contacts, 2))
	assert.Empty(t, FilterByCompany(contacts, 3))
}

func TestResolveCompany(t *testing.T) {
	companies := []models.Company{acme, globex}

	r := ResolveCompany(jane, companies)
	assert.True(t, r.Resolved)
	assert.Equal(t, acme, r.Company)
	assert.Equal(t, "Acme", r.Label())

	r = ResolveCompany(orph, companies)
	assert.False(t, r.Resolved)
	assert.Equal(t, "N/A", r.Label())

	r = ResolveCompany(loner, companies)
	assert.False(t, r.Resolved)

	r = ResolveCompany(jane, nil)
	assert.False(t, r.Resolved)
}

func TestDashboard(t *testing.T) {
	contacts := []models.Contact{jane, john, orph, loner}
	companies := []models.Company{acme, globex}

	rows := Dashboard(contacts, companies, "", models.NoCompany)
	assert.Len(t, rows, 4)
	assert.Equal(t, "Acme", rows[0].Company.Label())
	assert.Equal(t, "Globex", rows[1].Company.Label())
	assert.Equal(t, "N/A", rows[2].Company.Label())
	assert.Equal(t, "N/A", rows[3].Company.Label())

	rows = Dashboard(contacts, companies, "j", 1)
	assert.Equal(t, []Row{{Contact: jane, Company: Resolution{Company: acme, Resolved: true}}}, rows)

	rows = Dashboard(contacts, companies, "orphan", 1)
	assert.Empty(t, rows)
}

func TestSelectorsDoNotMutateInput(t *testing.T) {
	contacts := []models.Contact{jane, john, orph}
	companies := []models.Company{acme, globex}

	Dashboard(contacts, companies, "j", 2)
	FilterByName(contacts, "o")
	CompanyOptions(companies)

	assert.Equal(t, []models.Contact{jane, john, orph}, contacts)
	assert.Equal(t, []models.Company{acme, globex}, companies)
}

func TestCompanyOptions(t *testing.T) {
	assert.Equal(t, []Option{
		{ID: 0, Label: "All Companies"},
		{ID: 1, Label: "Acme"},
		{ID: 2, Label: "Globex"},
	}, CompanyOptions([]models.Company{acme, globex}))

	assert.Equal(t, []Option{{ID: 0, Label: "All Companies"}}, CompanyOptions(nil))
}

func TestFindByID(t *testing.T) {
	c, ok := FindByID([]models.Company{acme, globex}, 2)
	assert.True(t, ok)
	assert.Equal(t, globex, c)

	_, ok = FindByID([]models.Company{acme}, 2)
	assert.False(t, ok)
}
