package credstore

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PasswordCodec turns a submitted password into its stored form and checks
// a login attempt against it.
type PasswordCodec interface {
	Encode(password string) (string, error)
	Matches(stored, password string) bool
}

// PlainCodec stores passwords verbatim and compares them exactly.
type PlainCodec struct{}

func (PlainCodec) Encode(password string) (string, error) {
	return password, nil
}

func (PlainCodec) Matches(stored, password string) bool {
	return stored == password
}

// BcryptCodec stores bcrypt hashes.
type BcryptCodec struct {
	Cost int
}

func (c BcryptCodec) Encode(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptCodec) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordCodec returns the codec for a configured scheme. An empty
// scheme means plain.
func NewPasswordCodec(scheme string) (PasswordCodec, error) {
	switch scheme {
	case "", SchemePlain:
		return PlainCodec{}, nil
	case SchemeBcrypt:
		return BcryptCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme: %s", scheme)
	}
}
