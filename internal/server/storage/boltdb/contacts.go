package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/contactdesk/internal/models"
	"github.com/iudanet/contactdesk/internal/server/storage"
)

// ListContacts returns contacts ordered by ID
func (s *Storage) ListContacts(ctx context.Context, q storage.ListQuery) ([]models.Contact, error) {
	var contacts []models.Contact

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		contacts, err = list(b, func(c models.Contact) bool {
			return models.NameMatches(c.Name, q.Search)
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return storage.Window(contacts, q), nil
}

// GetContact retrieves contact by ID
// Returns ErrContactNotFound if contact doesn't exist
func (s *Storage) GetContact(ctx context.Context, id int64) (models.Contact, error) {
	var contact models.Contact

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		contact, err = getContact(b, id)
		return err
	})
	if err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}

// CreateContact saves a new contact with the next sequence ID
// Returns ErrInvalidCompany if company doesn't exist
func (s *Storage) CreateContact(ctx context.Context, draft models.ContactDraft) (models.Contact, error) {
	var contact models.Contact

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		if err := checkCompany(tx, draft.CompanyID); err != nil {
			return err
		}

		id, err := nextID(b)
		if err != nil {
			return err
		}

		contact = draft.WithID(id)
		return put(b, id, contact)
	})
	if err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}

// UpdateContact replaces contact with contact.ID
// Returns ErrContactNotFound or ErrInvalidCompany
func (s *Storage) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		if _, err := getContact(b, contact.ID); err != nil {
			return err
		}

		if err := checkCompany(tx, contact.CompanyID); err != nil {
			return err
		}

		return put(b, contact.ID, contact)
	})
	if err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}

// DeleteContact removes contact by ID
// Returns ErrContactNotFound if contact doesn't exist
func (s *Storage) DeleteContact(ctx context.Context, id int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}

		if b.Get(itob(id)) == nil {
			return storage.ErrContactNotFound
		}

		if err := b.Delete(itob(id)); err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return nil
	})
}

// ContactCompanies looks up companies referenced by the given contacts
func (s *Storage) ContactCompanies(ctx context.Context, contactIDs []int64) (map[int64]models.Company, error) {
	companies := make(map[int64]models.Company)

	err := s.db.View(func(tx *bbolt.Tx) error {
		contacts, err := bucket(tx, bucketContacts)
		if err != nil {
			return err
		}
		b, err := bucket(tx, bucketCompanies)
		if err != nil {
			return err
		}

		for _, id := range contactIDs {
			contact, err := getContact(contacts, id)
			if errors.Is(err, storage.ErrContactNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !contact.HasCompany() {
				continue
			}

			company, err := getCompany(b, contact.CompanyID)
			if errors.Is(err, storage.ErrCompanyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			companies[company.ID] = company
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return companies, nil
}

func getContact(b *bbolt.Bucket, id int64) (models.Contact, error) {
	data := b.Get(itob(id))
	if data == nil {
		return models.Contact{}, storage.ErrContactNotFound
	}

	var contact models.Contact
	if err := json.Unmarshal(data, &contact); err != nil {
		return models.Contact{}, fmt.Errorf("failed to unmarshal contact: %w", err)
	}
	return contact, nil
}

// checkCompany проверяет ссылку на компанию, 0 означает "без компании"
func checkCompany(tx *bbolt.Tx, companyID int64) error {
	if companyID == models.NoCompany {
		return nil
	}

	b, err := bucket(tx, bucketCompanies)
	if err != nil {
		return err
	}

	if b.Get(itob(companyID)) == nil {
		return storage.ErrInvalidCompany
	}
	return nil
}
