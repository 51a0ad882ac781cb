package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

const contactColumns = `id, name, phone, city, company_id`

// ListContacts returns contacts ordered by ID
// Returns empty slice if no contacts found
func (s *Storage) ListContacts(ctx context.Context, q storage.ListQuery) (contacts []models.Contact, err error) {
	clause, args := s.listClause(q)
	query := s.rebind(`SELECT ` + contactColumns + ` FROM contacts` + clause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	contacts = []models.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return contacts, nil
}

// GetContact retrieves contact by ID
// Returns ErrContactNotFound if contact doesn't exist
func (s *Storage) GetContact(ctx context.Context, id int64) (models.Contact, error) {
	query := s.rebind(`SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`)

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return models.Contact{}, storage.ErrContactNotFound
		}
		return models.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// CreateContact inserts a new contact
// Returns ErrInvalidCompany if company doesn't exist
func (s *Storage) CreateContact(ctx context.Context, draft models.ContactDraft) (models.Contact, error) {
	query := s.rebind(`
		INSERT INTO contacts (name, phone, city, company_id)
		VALUES (?, ?, ?, ?)
		RETURNING ` + contactColumns)

	contact, err := scanContact(s.db.QueryRowContext(ctx, query,
		draft.Name,
		draft.Phone,
		draft.City,
		companyRef(draft.CompanyID),
	))
	if err != nil {
		if violated(err) == constraintForeignKey {
			return models.Contact{}, storage.ErrInvalidCompany
		}
		return models.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

// UpdateContact replaces all contact fields
// Returns ErrContactNotFound or ErrInvalidCompany
func (s *Storage) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	query := s.rebind(`
		UPDATE contacts
		SET name = ?, phone = ?, city = ?, company_id = ?
		WHERE id = ?
		RETURNING ` + contactColumns)

	updated, err := scanContact(s.db.QueryRowContext(ctx, query,
		contact.Name,
		contact.Phone,
		contact.City,
		companyRef(contact.CompanyID),
		contact.ID,
	))
	if err != nil {
		switch {
		case isNoRows(err):
			return models.Contact{}, storage.ErrContactNotFound
		case violated(err) == constraintForeignKey:
			return models.Contact{}, storage.ErrInvalidCompany
		}
		return models.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return updated, nil
}

// DeleteContact removes contact by ID
// Returns ErrContactNotFound if contact doesn't exist
func (s *Storage) DeleteContact(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrContactNotFound
	}
	return nil
}

// ContactCompanies joins contacts with their companies
func (s *Storage) ContactCompanies(ctx context.Context, contactIDs []int64) (companies map[int64]models.Company, err error) {
	companies = make(map[int64]models.Company)
	if len(contactIDs) == 0 {
		return companies, nil
	}

	args := make([]any, 0, len(contactIDs))
	for _, id := range contactIDs {
		args = append(args, id)
	}
	query := s.rebind(`
		SELECT DISTINCT co.id, co.name
		FROM contacts c
		JOIN companies co ON co.id = c.company_id
		WHERE c.id IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ") + `)`)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact companies: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		var company models.Company
		if err := rows.Scan(&company.ID, &company.Name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies[company.ID] = company
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (models.Contact, error) {
	var (
		contact   models.Contact
		companyID sql.NullInt64
	)
	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Phone,
		&contact.City,
		&companyID,
	); err != nil {
		return models.Contact{}, err
	}
	contact.CompanyID = companyID.Int64
	return contact, nil
}

// companyRef хранит "без компании" как NULL, иначе сработает внешний ключ
func companyRef(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != models.NoCompany}
}
