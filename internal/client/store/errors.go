package store

import "errors"

var (
	// ErrClosed indicates that the store or its writer loop is closed
	ErrClosed = errors.New("store is closed")
)
