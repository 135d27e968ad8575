package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Store  Store
	Tokens *TokenService
}

// Login checks the email/username/password triple and issues a token
// pair. Lookup misses and bad passwords report the same error.
func (s *AuthService) Login(email, username, password string, rememberMe bool) (*TokenPair, error) {
	user, err := s.Store.UserByEmailAndUsername(normalize(email), normalize(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return s.Tokens.Issue(user, rememberMe)
}

// DeleteAccount removes the user; the profile and its discounts go with
// it via the cascade.
func (s *AuthService) DeleteAccount(userID uuid.UUID) error {
	user, err := s.Store.UserByID(userID)
	if err != nil {
		return err
	}
	return s.Store.DeleteUser(user)
}
