package secrets

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// Random is the randomness source used for share identifiers and polynomial
// coefficients unless a caller supplies its own.
var Random io.Reader = rand.Reader

// Secret wraps a byte slice that contains sensitive data (a secret being
// split, or one just reconstructed). It provides a mechanism to zero out the
// memory when no longer needed.
type Secret struct {
	data []byte
}

// ReadSecret reads r to EOF into a new Secret.
func ReadSecret(r io.Reader) (*Secret, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read secret")
	}
	return &Secret{data: data}, nil
}

// WrapSecret creates a Secret from an existing byte slice.
// WARNING: The original slice is still accessible; use this only when necessary.
func WrapSecret(data []byte) *Secret {
	return &Secret{data: data}
}

// Bytes returns the raw bytes of the secret.
// Use with caution and ensure the Secret is destroyed after use.
func (s *Secret) Bytes() []byte {
	return s.data
}

// Len returns the size of the secret in bytes.
func (s *Secret) Len() int {
	return len(s.data)
}

// Destroy overwrites the secret data with zeros. It is idempotent.
func (s *Secret) Destroy() {
	if s.data != nil {
		for i := range s.data {
			s.data[i] = 0
		}
		s.data = nil
	}
}
