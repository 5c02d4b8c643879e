package domain

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to categorised errors surfaced to callers.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeDuplicateName = "DUPLICATE_NAME"
	CodeNotFound      = "NOT_FOUND"
	CodeStorage       = "STORAGE_ERROR"
)

var (
	// ErrDuplicateName signals that the (category, name) pair is already taken.
	ErrDuplicateName = errors.New("catalog: name already used in category")
	// ErrSlugConflict is reported by repositories when a slug unique index rejects a write.
	ErrSlugConflict = errors.New("catalog: slug already exists")
	// ErrNotFound is the root of every missing-record error.
	ErrNotFound = errors.New("catalog: not found")
	// ErrInvalidInput is the root of every validation error.
	ErrInvalidInput = errors.New("catalog: invalid input")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Resource + " not found"
	}
	return e.Resource + " \"" + e.Key + "\" not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound wraps a missing record into a categorised NOT_FOUND error.
func NewNotFound(resource, key string) error {
	return goerrors.Wrap(&NotFoundError{Resource: resource, Key: key}, goerrors.CategoryNotFound, resource+" not found").
		WithTextCode(CodeNotFound).
		WithMetadata(map[string]any{"resource": resource, "key": key})
}

// NewDuplicateName builds the DUPLICATE_NAME conflict carrying the offending scope.
func NewDuplicateName(category string, name LocalizedString) error {
	return goerrors.Wrap(ErrDuplicateName, goerrors.CategoryConflict, "name already exists in category").
		WithTextCode(CodeDuplicateName).
		WithMetadata(map[string]any{
			"category": category,
			"name":     map[string]string(name.Compact()),
		})
}

// NewValidation wraps a validation failure (typically ozzo validation.Errors).
func NewValidation(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(errors.Join(ErrInvalidInput, err), goerrors.CategoryValidation, err.Error()).
		WithTextCode(CodeValidation)
}

// IsNotFound reports whether err describes a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsDuplicateName reports whether err is a DUPLICATE_NAME conflict.
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName) || goerrors.IsCategory(err, goerrors.CategoryConflict)
}

// IsValidation reports whether err is a VALIDATION_ERROR.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || goerrors.IsCategory(err, goerrors.CategoryValidation)
}
