package jwt_test

import (
	"testing"
	"time"

	"libraryhub/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func Test_AccessToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "librarian", "LIBRARIAN", testSecret, 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "librarian", claims.Username)
	assert.Equal(t, "LIBRARIAN", claims.Role)
}

func Test_AccessToken_When_SecretDoesNotMatch(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "librarian", "LIBRARIAN", testSecret, 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "a different secret")

	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func Test_AccessToken_When_Expired(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "librarian", "LIBRARIAN", testSecret, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, testSecret)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_AccessToken_When_Garbage(t *testing.T) {
	_, err := jwt.ValidateAccessToken("not.a.token", testSecret)

	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func Test_RefreshToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(7, "token-id-1", testSecret, 30)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func Test_RefreshToken_When_Expired(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(7, "token-id-1", testSecret, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateRefreshToken(token, testSecret)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_GetExpiryTime(t *testing.T) {
	expiry := jwt.GetExpiryTime(7)

	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)
}
