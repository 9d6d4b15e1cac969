package secrets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSecretAndDestroy(t *testing.T) {
	s, err := ReadSecret(bytes.NewReader([]byte("Too many secrets, Marty!")))
	require.NoError(t, err)
	assert.Equal(t, "Too many secrets, Marty!", string(s.Bytes()))
	assert.Equal(t, 24, s.Len())

	backing := s.Bytes()
	s.Destroy()
	assert.Nil(t, s.Bytes())
	assert.Equal(t, make([]byte, len(backing)), backing)

	// second call is a no-op
	s.Destroy()
}

func TestWrapSecret(t *testing.T) {
	data := []byte{1, 2, 3}
	s := WrapSecret(data)
	s.Destroy()
	assert.Equal(t, []byte{0, 0, 0}, data)
}
