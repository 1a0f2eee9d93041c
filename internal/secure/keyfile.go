package secure

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"os"
	"strings"
)

// LoadOrCreateKey reads the symmetric key from path, generating and
// persisting a fresh one if the file does not exist. The key is loaded
// once at process start and held immutable for the server's lifetime.
func LoadOrCreateKey(path string) ([KeySize]byte, error) {
	var key [KeySize]byte

	data, err := os.ReadFile(path)
	if err == nil {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil || len(decoded) != KeySize {
			return key, ErrBadKeyFile
		}
		copy(key[:], decoded)
		return key, nil
	}
	if !os.IsNotExist(err) {
		return key, err
	}

	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return key, err
	}

	encoded := base64.StdEncoding.EncodeToString(key[:]) + "\n"
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return key, err
	}
	return key, nil
}
