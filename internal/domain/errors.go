package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrParse      = errors.New("parse error")
	ErrStorage    = errors.New("storage error")
	ErrExport     = errors.New("export error")
	ErrConstraint = errors.New("constraint violation")
)

// ParseError reports malformed exchange data.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// StorageError reports a failed write or read against persistent storage.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// ExportError reports a failure of the document rendering collaborator.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func (e *ExportError) Is(target error) bool { return target == ErrExport }

// ConstraintViolation reports a refused operation, e.g. removing the last item
// of a section.
type ConstraintViolation struct {
	Rule string
}

func (e *ConstraintViolation) Error() string {
	return "constraint violation: " + e.Rule
}

func (e *ConstraintViolation) Is(target error) bool { return target == ErrConstraint }

// ErrQuotaExceeded is returned by storage backends that enforce a size limit.
var ErrQuotaExceeded = errors.New("quota exceeded")
