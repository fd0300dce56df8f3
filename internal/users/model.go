package users

import "time"

// User is a registered account identified by a unique username.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
