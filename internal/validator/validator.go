// Package validator holds the stateless input rules for the login and
// register forms. Every function is pure and reports rejections as values.
package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/haguru/localauth/internal/autherrors"
)

const (
	// PasswordMinLength is counted in runes. A browser counts UTF-16 units,
	// so a password of astral characters (emoji) needs twice as many here.
	PasswordMinLength = 6

	// whitespace is the class a browser regexp matches with \s. RE2's \s
	// only covers ASCII.
	whitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
)

var (
	emailRegex    = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)
)

// RegistrationInput is the raw register form. Callers trim username and
// email before validating; passwords are taken verbatim.
type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// IsSpace reports whether r is whitespace or a line terminator in the
// browser's sense, which includes the BOM and excludes U+0085.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// TrimSpace removes leading and trailing IsSpace runes.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Normalize replaces each invalid UTF-8 byte with U+FFFD, the same rewrite
// encoding/json applies to stored records. Input must be normalized before
// it is validated or compared with stored values.
func Normalize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return string([]rune(s))
}

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidUsername reports whether s is at least 3 ASCII letters, digits or underscores.
func IsValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// IsValidPassword reports whether s is non-empty and long enough.
func IsValidPassword(s string) bool {
	return s != "" && utf8.RuneCountInString(s) >= PasswordMinLength
}

// PasswordsMatch reports whether the confirmation equals the password exactly.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// ValidateRegistration checks every field and returns at most one error per
// field, in form order. It returns nil when the input is acceptable.
func ValidateRegistration(in RegistrationInput) autherrors.FieldErrors {
	var errs autherrors.FieldErrors

	switch {
	case in.Username == "":
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldUsername, autherrors.KindEmptyField))
	case !IsValidUsername(in.Username):
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldUsername, autherrors.KindInvalidFormat))
	}

	switch {
	case in.Email == "":
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldEmail, autherrors.KindEmptyField))
	case !IsValidEmail(in.Email):
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldEmail, autherrors.KindInvalidFormat))
	}

	switch {
	case in.Password == "":
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldPassword, autherrors.KindEmptyField))
	case !IsValidPassword(in.Password):
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldPassword, autherrors.KindPasswordTooShort))
	}

	switch {
	case in.ConfirmPassword == "":
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldConfirmPassword, autherrors.KindEmptyField))
	case !PasswordsMatch(in.Password, in.ConfirmPassword):
		errs = append(errs, autherrors.NewFieldError(autherrors.FieldConfirmPassword, autherrors.KindPasswordMismatch))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLogin only requires both fields to be present.
func ValidateLogin(username, password string) error {
	if username == "" || password == "" {
		return &autherrors.FieldError{
			Kind:    autherrors.KindEmptyField,
			Message: autherrors.MsgFillAllFields,
		}
	}
	return nil
}

// ValidateField applies the format rule for a single field as the user
// leaves it. An empty value is not an error here. password is only used for
// the confirmation field. Unknown fields are never rejected.
func ValidateField(field, value, password string) *autherrors.FieldError {
	if value == "" {
		return nil
	}

	switch field {
	case autherrors.FieldUsername:
		if !IsValidUsername(value) {
			return autherrors.NewFieldError(field, autherrors.KindInvalidFormat)
		}
	case autherrors.FieldEmail:
		if !IsValidEmail(value) {
			return autherrors.NewFieldError(field, autherrors.KindInvalidFormat)
		}
	case autherrors.FieldPassword:
		if !IsValidPassword(value) {
			return autherrors.NewFieldError(field, autherrors.KindPasswordTooShort)
		}
	case autherrors.FieldConfirmPassword:
		if !PasswordsMatch(password, value) {
			return autherrors.NewFieldError(field, autherrors.KindPasswordMismatch)
		}
	}
	return nil
}

// IsKnownField reports whether field is one of the register form fields.
func IsKnownField(field string) bool {
	switch field {
	case autherrors.FieldUsername, autherrors.FieldEmail,
		autherrors.FieldPassword, autherrors.FieldConfirmPassword:
		return true
	}
	return false
}
