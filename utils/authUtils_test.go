package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", hash)
	assert.NoError(t, ComparePasswords(hash, "Secret1"))
	assert.Error(t, ComparePasswords(hash, "Secret1x"))
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))
	assert.False(t, IsHashed("Secret1"))
	assert.False(t, IsHashed(""))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv(JWT_SECRET_KEY, "test-secret")

	token, err := CreateToken("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Setenv(JWT_SECRET_KEY, "test-secret")
	token, err := CreateToken("42")
	require.NoError(t, err)

	t.Setenv(JWT_SECRET_KEY, "other-secret")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestCreateTokenWithoutSecret(t *testing.T) {
	t.Setenv(JWT_SECRET_KEY, "")
	_, err := CreateToken("42")
	assert.Error(t, err)
}

func TestGetVerificationCode(t *testing.T) {
	code := GetVerificationCode()
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric")
	}
}
