// Package autherrors holds the user-facing outcomes of registration and
// login. None of them are fatal; they are shown to the user as a banner or
// next to a form field.
package autherrors

import (
	"errors"
	"strings"
)

// Kind classifies a rejection.
type Kind string

const (
	KindEmptyField         Kind = "EMPTY_FIELD"
	KindInvalidFormat      Kind = "INVALID_FORMAT"
	KindPasswordTooShort   Kind = "PASSWORD_TOO_SHORT"
	KindPasswordMismatch   Kind = "PASSWORD_MISMATCH"
	KindDuplicateUsername  Kind = "DUPLICATE_USERNAME"
	KindDuplicateEmail     Kind = "DUPLICATE_EMAIL"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
)

// Form field names, shared by the validator, the HTTP surface and the CLI.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

var (
	ErrEmptyField         = errors.New("required field is empty")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var sentinels = map[Kind]error{
	KindEmptyField:         ErrEmptyField,
	KindInvalidFormat:      ErrInvalidFormat,
	KindPasswordTooShort:   ErrPasswordTooShort,
	KindPasswordMismatch:   ErrPasswordMismatch,
	KindDuplicateUsername:  ErrDuplicateUsername,
	KindDuplicateEmail:     ErrDuplicateEmail,
	KindInvalidCredentials: ErrInvalidCredentials,
}

// Sentinel returns the package-level error for a kind, or nil for an unknown kind.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// FieldError is a rejection tied to one form field.
type FieldError struct {
	Field   string
	Kind    Kind
	Message string
}

// NewFieldError builds a FieldError with the default message for the field and kind.
func NewFieldError(field string, kind Kind) *FieldError {
	return &FieldError{
		Field:   field,
		Kind:    kind,
		Message: MessageFor(field, kind),
	}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match the kind sentinel.
func (e *FieldError) Unwrap() error {
	return e.Kind.Sentinel()
}

// FieldErrors is an ordered set of field rejections, at most one per field.
type FieldErrors []*FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes every field error to errors.Is and errors.As.
func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(fe))
	for _, e := range fe {
		errs = append(errs, e)
	}
	return errs
}

// Get returns the error for field, or nil.
func (fe FieldErrors) Get(field string) *FieldError {
	for _, e := range fe {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// Map flattens the errors into field -> message.
func (fe FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		m[e.Field] = e.Message
	}
	return m
}

// KindOf reports the kind of the first autherrors value found in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind, true
		}
	}
	return "", false
}
