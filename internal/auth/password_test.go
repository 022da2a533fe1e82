package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.True(t, PasswordMatches(hash, "secret1"))
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, PasswordMatches(first, "same-password"))
	assert.True(t, PasswordMatches(second, "same-password"))
}

func TestComparePasswordWrongPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.Error(t, ComparePassword(hash, "wrong-password"))
	assert.False(t, PasswordMatches(hash, "wrong-password"))
}

func TestPasswordMatchesMalformedDigest(t *testing.T) {
	t.Parallel()

	// A digest that never came from bcrypt must verify false, not panic.
	assert.False(t, PasswordMatches("not-a-bcrypt-digest", "anything"))
	assert.False(t, PasswordMatches("", "anything"))
}
