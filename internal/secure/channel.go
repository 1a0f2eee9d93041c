package secure

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// Errors
var (
	ErrDecryptFailed = errors.New("envelope could not be decrypted")
	ErrBadKeyFile    = errors.New("key file does not contain a valid key")
)

// KeySize is the symmetric key length in bytes
const KeySize = 32

const nonceSize = 24

// Cipher wraps plaintext lines into encrypted envelopes and back.
// Envelopes are newline-safe so they can travel on a line protocol.
type Cipher interface {
	// Encode wraps a plaintext payload into an envelope
	Encode(plaintext string) (string, error)

	// Decode unwraps an envelope back to the plaintext payload.
	// Returns ErrDecryptFailed if the envelope is corrupt, truncated,
	// or sealed under a different key.
	Decode(envelope string) (string, error)
}

// Channel is a Cipher backed by NaCl secretbox with a process-wide
// symmetric key. The same key is shared by server and players.
type Channel struct {
	key [KeySize]byte
}

// Ensure Channel implements Cipher
var _ Cipher = (*Channel)(nil)

// NewChannel creates a Channel using the given key
func NewChannel(key [KeySize]byte) *Channel {
	return &Channel{key: key}
}

// Encode seals the plaintext under a fresh random nonce and returns
// base64(nonce || box).
func (c *Channel) Encode(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a base64(nonce || box) envelope
func (c *Channel) Decode(envelope string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrDecryptFailed
	}
	if len(sealed) < nonceSize {
		return "", ErrDecryptFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
