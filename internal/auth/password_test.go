package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secretpw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secretpw", hash)

	assert.NoError(t, ComparePassword(hash, "secretpw"))
	assert.ErrorIs(t, ComparePassword(hash, "wrongpw"), ErrPasswordMismatch)

	err = ComparePassword("not-a-bcrypt-hash", "secretpw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
