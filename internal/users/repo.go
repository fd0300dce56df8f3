package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrExists is returned when the username is already taken.
var ErrExists = errors.New("user already exists")

// UsersRepo defines persistence operations for users.
type UsersRepo interface {
	Create(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
