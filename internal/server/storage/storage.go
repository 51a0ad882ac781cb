package storage

import (
	"context"
	"strings"

	"github.com/iudanet/contactdesk/internal/models"
)

// ListQuery narrows list results
type ListQuery struct {
	// Search filters by case-insensitive name containment, empty matches all
	Search string
	// Offset skips the first Offset rows
	Offset int
	// Limit caps the number of rows, 0 means no limit
	Limit int
}

// Window applies Offset and Limit to an already filtered slice
func Window[T any](items []T, q ListQuery) []T {
	if q.Offset >= len(items) {
		return items[:0]
	}
	items = items[max(q.Offset, 0):]
	if q.Limit > 0 && q.Limit < len(items) {
		items = items[:q.Limit]
	}
	return items
}

// ContactStorage defines interface for contacts persistence
type ContactStorage interface {
	// ListContacts returns contacts ordered by ID
	ListContacts(ctx context.Context, q ListQuery) ([]models.Contact, error)

	// GetContact returns ErrContactNotFound if contact doesn't exist
	GetContact(ctx context.Context, id int64) (models.Contact, error)

	// CreateContact assigns a new ID.
	// Returns ErrInvalidCompany if CompanyID references a missing company.
	CreateContact(ctx context.Context, draft models.ContactDraft) (models.Contact, error)

	// UpdateContact replaces contact with contact.ID.
	// Returns ErrContactNotFound or ErrInvalidCompany.
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)

	// DeleteContact returns ErrContactNotFound if contact doesn't exist
	DeleteContact(ctx context.Context, id int64) error

	// ContactCompanies resolves companies referenced by the given contacts.
	// Result is keyed by company ID, unknown contacts and contacts without
	// a company are skipped.
	ContactCompanies(ctx context.Context, contactIDs []int64) (map[int64]models.Company, error)
}

// CompanyStorage defines interface for companies persistence
type CompanyStorage interface {
	// ListCompanies returns companies ordered by ID
	ListCompanies(ctx context.Context, q ListQuery) ([]models.Company, error)

	// GetCompany returns ErrCompanyNotFound if company doesn't exist
	GetCompany(ctx context.Context, id int64) (models.Company, error)

	// CreateCompany returns ErrCompanyExists if name is taken
	CreateCompany(ctx context.Context, draft models.CompanyDraft) (models.Company, error)

	// UpdateCompany returns ErrCompanyNotFound or ErrCompanyExists
	UpdateCompany(ctx context.Context, company models.Company) (models.Company, error)

	// DeleteCompany deletes the company together with its contacts.
	// Returns ErrCompanyNotFound if company doesn't exist.
	DeleteCompany(ctx context.Context, id int64) error
}

// Storage aggregates all server storages
type Storage interface {
	ContactStorage
	CompanyStorage

	// Ping checks that storage is reachable
	Ping(ctx context.Context) error

	Close() error
}

// LikePattern builds a LIKE pattern for case-insensitive containment.
// Wildcards in search are escaped with '\'.
func LikePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
