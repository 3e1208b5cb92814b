package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewAuthService("owner", hash)

	assert.NoError(t, svc.Login("owner", "correct horse"))
	assert.ErrorIs(t, svc.Login("owner", "battery staple"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login("intruder", "correct horse"), ErrInvalidCredentials)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
