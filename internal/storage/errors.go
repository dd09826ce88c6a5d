package storage

import (
	"errors"
	"fmt"
)

// Errors returned by every Storage implementation, wrapped in a
// *StorageError. Provider-specific failures are mapped onto them so the
// content loader can pick a status without knowing the provider.
var (
	ErrNotFound     = errors.New("document not found")
	ErrAccessDenied = errors.New("document source denied access")
	ErrKeyExists    = errors.New("document already exists")
	ErrInvalidKey   = errors.New("invalid document key")
	ErrTooLarge     = errors.New("document exceeds maximum size")
)

// StorageError records which operation failed on which key.
type StorageError struct {
	Op  string // "Get", "Put" or "Exists"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsKeyExists reports whether a Put was refused because the key exists.
func IsKeyExists(err error) bool { return errors.Is(err, ErrKeyExists) }

// IsAccessDenied reports whether the provider refused the operation.
func IsAccessDenied(err error) bool { return errors.Is(err, ErrAccessDenied) }

// IsInvalidKey reports whether the key was rejected before any I/O.
func IsInvalidKey(err error) bool { return errors.Is(err, ErrInvalidKey) }
