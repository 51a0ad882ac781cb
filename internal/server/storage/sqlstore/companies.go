package sqlstore

import (
	"context"
	"fmt"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

// ListCompanies returns companies ordered by ID
// Returns empty slice if no companies found
func (s *Storage) ListCompanies(ctx context.Context, q storage.ListQuery) (companies []models.Company, err error) {
	clause, args := s.listClause(q)
	query := s.rebind(`SELECT id, name FROM companies` + clause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	companies = []models.Company{}
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(&company.ID, &company.Name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

// GetCompany retrieves company by ID
// Returns ErrCompanyNotFound if company doesn't exist
func (s *Storage) GetCompany(ctx context.Context, id int64) (models.Company, error) {
	var company models.Company
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, name FROM companies WHERE id = ?`), id).
		Scan(&company.ID, &company.Name)
	if err != nil {
		if isNoRows(err) {
			return models.Company{}, storage.ErrCompanyNotFound
		}
		return models.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// CreateCompany inserts a new company
// Returns ErrCompanyExists if name is taken
func (s *Storage) CreateCompany(ctx context.Context, draft models.CompanyDraft) (models.Company, error) {
	var company models.Company
	err := s.db.QueryRowContext(ctx, s.rebind(`INSERT INTO companies (name) VALUES (?) RETURNING id, name`), draft.Name).
		Scan(&company.ID, &company.Name)
	if err != nil {
		if violated(err) == constraintUnique {
			return models.Company{}, storage.ErrCompanyExists
		}
		return models.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// UpdateCompany renames company
// Returns ErrCompanyNotFound or ErrCompanyExists
func (s *Storage) UpdateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	var updated models.Company
	err := s.db.QueryRowContext(ctx,
		s.rebind(`UPDATE companies SET name = ? WHERE id = ? RETURNING id, name`),
		company.Name, company.ID,
	).Scan(&updated.ID, &updated.Name)
	if err != nil {
		switch {
		case isNoRows(err):
			return models.Company{}, storage.ErrCompanyNotFound
		case violated(err) == constraintUnique:
			return models.Company{}, storage.ErrCompanyExists
		}
		return models.Company{}, fmt.Errorf("failed to update company: %w", err)
	}
	return updated, nil
}

// DeleteCompany removes company, its contacts are removed by ON DELETE CASCADE
// Returns ErrCompanyNotFound if company doesn't exist
func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM companies WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCompanyNotFound
	}
	return nil
}
