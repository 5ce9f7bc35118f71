package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matheus3301/pairchat/internal/identity"
)

// CreateUser inserts an account and returns its id.
func (db *DB) CreateUser(ctx context.Context, username string, passwordHash []byte, createdAt int64) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, createdAt)
	if isUniqueViolation(err) {
		return 0, ErrNameTaken
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UserByName returns the account with the given username, or nil.
func (db *DB) UserByName(ctx context.Context, username string) (*identity.User, error) {
	return scanUser(db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username))
}

// UserByID returns the account with the given id, or nil.
func (db *DB) UserByID(ctx context.Context, id int64) (*identity.User, error) {
	return scanUser(db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*identity.User, error) {
	var u identity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
