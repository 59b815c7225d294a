package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	tokenString, err := tokens.Generate("64f1c0ffee0000000000aaaa", "superadmin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tokens.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.ID)
	assert.Equal(t, "superadmin", claims.Role)
}

func TestValidateWrongSecret(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)

	tokenString, err := tokens.Generate("64f1c0ffee0000000000aaaa", "admin")
	require.NoError(t, err)

	_, err = other.Validate(tokenString)
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", -time.Minute)

	tokenString, err := tokens.Generate("64f1c0ffee0000000000aaaa", "admin")
	require.NoError(t, err)

	_, err = tokens.Validate(tokenString)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	_, err := tokens.Validate("not.a.token")
	assert.Error(t, err)

	_, err = tokens.Validate("")
	assert.Error(t, err)
}
