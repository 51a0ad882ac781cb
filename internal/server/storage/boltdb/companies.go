package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

// ListCompanies returns companies ordered by ID
func (s *Storage) ListCompanies(ctx context.Context, q storage.ListQuery) ([]models.Company, error) {
	var companies []models.Company

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}

		companies, err = list(b, func(c models.Company) bool {
			return models.NameMatches(c.Name, q.Search)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return storage.Window(companies, q), nil
}

// GetCompany retrieves company by ID
// Returns ErrCompanyNotFound if company doesn't exist
func (s *Storage) GetCompany(ctx context.Context, id int64) (models.Company, error) {
	var company models.Company

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}

		company, err = getCompany(b, id)
		return err
	})
	if err != nil {
		return models.Company{}, err
	}

	return company, nil
}

// CreateCompany saves a new company
// Returns ErrCompanyExists if name is taken
func (s *Storage) CreateCompany(ctx context.Context, draft models.CompanyDraft) (models.Company, error) {
	var company models.Company

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}
		names, err := bucket(tx, bucketCompanyNames)
		if err != nil {
			return err
		}

		if names.Get([]byte(draft.Name)) != nil {
			return storage.ErrCompanyExists
		}

		id, err := nextID(b)
		if err != nil {
			return err
		}

		company = draft.WithID(id)
		if err := names.Put([]byte(company.Name), itob(id)); err != nil {
			return fmt.Errorf("failed to index company name: %w", err)
		}
		return put(b, id, company)
	})
	if err != nil {
		return models.Company{}, err
	}

	return company, nil
}

// UpdateCompany renames company
// Returns ErrCompanyNotFound or ErrCompanyExists
func (s *Storage) UpdateCompany(ctx context.Context, company models.Company) (models.Company, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}
		names, err := bucket(tx, bucketCompanyNames)
		if err != nil {
			return err
		}

		current, err := getCompany(b, company.ID)
		if err != nil {
			return err
		}

		if owner := names.Get([]byte(company.Name)); owner != nil && btoi(owner) != company.ID {
			return storage.ErrCompanyExists
		}

		if err := names.Delete([]byte(current.Name)); err != nil {
			return fmt.Errorf("failed to unindex company name: %w", err)
		}
		if err := names.Put([]byte(company.Name), itob(company.ID)); err != nil {
			return fmt.Errorf("failed to index company name: %w", err)
		}
		return put(b, company.ID, company)
	})
	if err != nil {
		return models.Company{}, err
	}

	return company, nil
}

// DeleteCompany removes company together with its contacts
// Returns ErrCompanyNotFound if company doesn't exist
func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}
		names, err := bucket(tx, bucketCompanyNames)
		if err != nil {
			return err
		}
		contacts, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		company, err := getCompany(b, id)
		if err != nil {
			return err
		}

		// Каскадно удаляем контакты компании
		employees, err := list(contacts, func(c models.Contact) bool {
			return c.CompanyID == id
		})
		if err != nil {
			return err
		}
		for _, c := range employees {
			if err := contacts.Delete(itob(c.ID)); err != nil {
				return fmt.Errorf("failed to delete contact %d: %w", c.ID, err)
			}
		}

		if err := names.Delete([]byte(company.Name)); err != nil {
			return fmt.Errorf("failed to unindex company name: %w", err)
		}
		if err := b.Delete(itob(id)); err != nil {
			return fmt.Errorf("failed to delete company: %w", err)
		}
		return nil
	})
}

func getCompany(b *bbolt.Bucket, id int64) (models.Company, error) {
	data := b.Get(itob(id))
	if data == nil {
		return models.Company{}, storage.ErrCompanyNotFound
	}

	var company models.Company
	if err := json.Unmarshal(data, &company); err != nil {
		return models.Company{}, fmt.Errorf("failed to unmarshal company: %w", err)
	}
	return company, nil
}
