package store

import "context"

// Counts is a snapshot of table sizes reported by the daemon status call.
type Counts struct {
	Users    int64
	Requests int64
	Messages int64
}

// Counts returns the number of users, requests and messages.
func (db *DB) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM connection_requests),
			(SELECT COUNT(*) FROM messages)`).Scan(&c.Users, &c.Requests, &c.Messages)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
