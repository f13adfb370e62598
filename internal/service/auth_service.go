// Package service contains the application's business logic.
package service

import (
	"context"

	"warbler/internal/auth"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// Default artwork applied when a signup provides no image.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// AuthService implements signup and credential verification.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService returns an AuthService backed by the given user repository.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup hashes the password and inserts the new user.
//
// An empty password fails eagerly with a validation error, before any
// persistence attempt. Username and email are deliberately not validated
// here: an empty or duplicate identity surfaces as an integrity error from
// the insert, mirroring where the constraints actually live.
func (s *AuthService) Signup(ctx context.Context, username, email, password, imageURL string) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       hashed,
		ImageURL:       imageURL,
		HeaderImageURL: DefaultHeaderImageURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up a user by username and verifies the password.
// An unknown username and a wrong password are the same negative result:
// (nil, nil). Errors are reserved for infrastructure failures.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, nil
	}
	return user, nil
}
