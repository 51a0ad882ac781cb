package storage

import "errors"

// Common storage errors
var (
	// ErrContactNotFound indicates that contact was not found in storage
	ErrContactNotFound = errors.New("contact not found")

	// ErrCompanyNotFound indicates that company was not found in storage
	ErrCompanyNotFound = errors.New("company not found")

	// ErrCompanyExists indicates that company with this name already exists
	ErrCompanyExists = errors.New("company already exists")

	// ErrInvalidCompany indicates that contact references a company that doesn't exist
	ErrInvalidCompany = errors.New("referenced company does not exist")
)
