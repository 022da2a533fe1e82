package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-123", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.True(t, claims.IsAdmin)
}

func TestGenerateTokenDefaultTTLIs24Hours(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken("user-123", false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)
}

func TestGenerateTokenDistinctPerIssuance(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	first, _, err := tm.GenerateToken("user-123", false)
	require.NoError(t, err)
	second, _, err := tm.GenerateToken("user-123", false)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestParseTokenAdminFlagSnapshot(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("user-123", false)
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("right-secret", 60)
	token, _, err := tm.GenerateToken("user-123", false)
	require.NoError(t, err)

	other := NewTokenManager("wrong-secret", 60)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	expired := signedTokenAt(t, "test-secret", "user-123", time.Now().Add(-time.Minute))
	_, err := tm.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	for _, tokenStr := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tm.ParseToken(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenStr)
	}
}

func TestParseTokenRejectsUnexpectedSigningMethod(t *testing.T) {
	t.Parallel()

	// alg=none tokens must never verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 60)
	_, err = tm.ParseToken(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func signedTokenAt(t *testing.T, secret, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenStr
}
