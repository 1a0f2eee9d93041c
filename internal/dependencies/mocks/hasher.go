package mocks

import (
	"errors"

	"github.com/jkothapalli/netpong/internal/dependencies/hasher"
)

// ErrMockHashMismatch is returned by PlainHasher.Compare on mismatch
var ErrMockHashMismatch = errors.New("password does not match digest")

// PlainHasher is a Hasher that "hashes" by prefixing the password.
// bcrypt is far too slow for tight test loops.
type PlainHasher struct{}

// Ensure PlainHasher implements Hasher
var _ hasher.Hasher = (*PlainHasher)(nil)

// NewPlainHasher creates a PlainHasher
func NewPlainHasher() *PlainHasher {
	return &PlainHasher{}
}

// Hash returns a reversible marker digest
func (h *PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

// Compare checks the password against a marker digest
func (h *PlainHasher) Compare(digest, password string) error {
	if digest != "plain:"+password {
		return ErrMockHashMismatch
	}
	return nil
}
