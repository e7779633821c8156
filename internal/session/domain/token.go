package domain

import (
	"errors"
	"strings"
)

// ErrEmptyToken is returned when a bearer token string is empty or blank.
var ErrEmptyToken = errors.New("token must not be empty")

// Token is an opaque bearer token string. Immutable once constructed.
type Token struct {
	value string
}

// NewToken wraps the given bearer string. Returns ErrEmptyToken if it is
// empty or whitespace only.
func NewToken(value string) (Token, error) {
	if strings.TrimSpace(value) == "" {
		return Token{}, ErrEmptyToken
	}
	return Token{value: value}, nil
}

// String returns the raw bearer string.
func (t Token) String() string {
	return t.value
}

// IsZero reports whether the token is the zero value (never produced by NewToken).
func (t Token) IsZero() bool {
	return t.value == ""
}
