package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, h.Verify(hash, "s3cret!"))
	assert.False(t, h.Verify(hash, "wrong"))
	assert.False(t, h.Verify("not-a-hash", "s3cret!"))
}

func TestBcryptHasher_TooLong(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := BcryptHasher{Cost: bcrypt.MinCost}.Hash(string(long))
	assert.Error(t, err)
}
