package listing

import (
	"errors"
	"fmt"
)

// ValidationFailure describes a filter term that could not be interpreted.
// Optional terms are dropped and reported; required ones fail the request.
type ValidationFailure struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("listing: invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

// StorageFailure means the collection could not complete a count or fetch.
type StorageFailure struct {
	Op  string
	Err error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("listing: storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageFailure) Unwrap() error { return e.Err }

// CancellationFailure means the caller's context ended before the reads did.
type CancellationFailure struct {
	Op  string
	Err error
}

func (e *CancellationFailure) Error() string {
	return fmt.Sprintf("listing: %s cancelled: %v", e.Op, e.Err)
}

func (e *CancellationFailure) Unwrap() error { return e.Err }

func IsValidationFailure(err error) bool {
	var target *ValidationFailure
	return errors.As(err, &target)
}

func IsStorageFailure(err error) bool {
	var target *StorageFailure
	return errors.As(err, &target)
}

func IsCancellationFailure(err error) bool {
	var target *CancellationFailure
	return errors.As(err, &target)
}
