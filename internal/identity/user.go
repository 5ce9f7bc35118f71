// Package identity owns user accounts: registration, password checks and
// the username <-> id directory used by the connection registry.
package identity

import (
	"context"
	"errors"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownUser        = errors.New("unknown user id")
)

// User is a registered account. Usernames are unique and never change.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    int64
}

// UserStore persists accounts. Lookups return (nil, nil) when no row
// matches. CreateUser returns ErrUsernameTaken on a duplicate name.
type UserStore interface {
	CreateUser(ctx context.Context, username string, passwordHash []byte, createdAt int64) (int64, error)
	UserByName(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id int64) (*User, error)
}

// Directory maps between usernames and user ids.
type Directory interface {
	ResolveUserID(ctx context.Context, username string) (int64, bool, error)
	DisplayName(ctx context.Context, id int64) (string, error)
}
