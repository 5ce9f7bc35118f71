package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/matheus3301/pairchat/internal/identity"
)

// CreateUser inserts an account and returns its id.
func (s *Store) CreateUser(ctx context.Context, username string, passwordHash []byte, createdAt int64) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		username, passwordHash, createdAt).Scan(&id)
	if isUniqueViolation(err) {
		return 0, identity.ErrUsernameTaken
	}
	return id, err
}

// UserByName returns the account with the given username, or nil.
func (s *Store) UserByName(ctx context.Context, username string) (*identity.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username))
}

// UserByID returns the account with the given id, or nil.
func (s *Store) UserByID(ctx context.Context, id int64) (*identity.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = $1`, id))
}

func scanUser(row pgx.Row) (*identity.User, error) {
	var u identity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
