package password_test

import (
	"testing"

	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, password.Verify("correct horse battery staple", hash))
	assert.False(t, password.Verify("wrong password", hash))
}

func Test_HashToken_IsDeterministic(t *testing.T) {
	first := password.HashToken("some-refresh-token")
	second := password.HashToken("some-refresh-token")
	other := password.HashToken("another-refresh-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}

func Test_ValidatePassword(t *testing.T) {
	assert.True(t, password.ValidatePassword("longenough"))
	assert.False(t, password.ValidatePassword("short"))
}
