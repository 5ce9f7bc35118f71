package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/matheus3301/pairchat/internal/conversation"
)

const messageColumns = `id, sender_id, receiver_id, body, timestamp`

// InsertMessage stores msg with timestamp max(msg.Timestamp, newest stored
// timestamp). Concurrent inserts serialize on a transaction-scoped
// advisory lock so the MAX they read is never stale.
func (s *Store) InsertMessage(ctx context.Context, msg *conversation.Message) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, messageClockLock); err != nil {
		return fmt.Errorf("message clock lock: %w", err)
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, body, timestamp)
		VALUES ($1, $2, $3, GREATEST($4::bigint, COALESCE((SELECT MAX(timestamp) FROM messages), 0)))
		RETURNING id, timestamp`,
		msg.SenderID, msg.ReceiverID, msg.Text, msg.Timestamp).Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// MessagesBetween returns the pair's messages ordered by timestamp then id.
func (s *Store) MessagesBetween(ctx context.Context, a, b int64) ([]conversation.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY timestamp, id`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []conversation.Message
	for rows.Next() {
		var m conversation.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// LatestBetween returns the newest message of the pair, or nil.
func (s *Store) LatestBetween(ctx context.Context, a, b int64) (*conversation.Message, error) {
	var m conversation.Message
	err := s.pool.QueryRow(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`, a, b).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountFrom counts the messages sender has sent to receiver.
func (s *Store) CountFrom(ctx context.Context, senderID, receiverID int64) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE sender_id = $1 AND receiver_id = $2`,
		senderID, receiverID).Scan(&n)
	return n, err
}

var _ conversation.Repository = (*Store)(nil)
