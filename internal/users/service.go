package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docvault-backend/internal/shared/auth"
)

// ErrInvalidCredentials is returned when the username or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidInput is returned when the username or password is missing.
var ErrInvalidInput = errors.New("username and password are required")

const bcryptCost = 10

// Service contains account business logic.
type Service struct {
	Repo   UsersRepo
	Tokens *auth.TokenManager
}

// Signup creates an account and returns a signed token for it.
func (s *Service) Signup(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return "", ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.Tokens.Issue(user.ID)
}

// Signin verifies the credentials and returns a signed token.
func (s *Service) Signin(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Issue(user.ID)
}

// Get returns the user with the given ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}
