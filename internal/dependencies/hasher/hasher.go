package hasher

import "golang.org/x/crypto/bcrypt"

// Hasher turns passwords into one-way digests and checks them.
// Injected into the credential store so tests can swap in a cheap double.
type Hasher interface {
	// Hash returns a salted one-way digest of the password
	Hash(password string) (string, error)

	// Compare checks a password against a stored digest.
	// Returns nil on match, an error otherwise.
	Compare(digest, password string) error
}

// BcryptHasher implements Hasher with bcrypt at the default cost
type BcryptHasher struct {
	cost int
}

// New creates a BcryptHasher with bcrypt's default cost
func New() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// NewWithCost creates a BcryptHasher with an explicit cost
func NewWithCost(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of the password
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare checks the password against a bcrypt digest
func (h *BcryptHasher) Compare(digest, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
}
