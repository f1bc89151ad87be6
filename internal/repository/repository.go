// Package repository holds the persistence interfaces for users and products
// and their gorm implementations.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm sentinel errors onto the repository ones
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
