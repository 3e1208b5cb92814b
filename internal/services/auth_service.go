package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/yukikurage/opsboard/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService checks the credentials of the single dashboard owner.
type AuthService struct {
	username     string
	passwordHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(username, passwordHash string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Login verifies the owner's username and password.
func (s *AuthService) Login(username, password string) error {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// bcrypt runs even when the username is wrong.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userMatch || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces the value for OWNER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hash), nil
}
