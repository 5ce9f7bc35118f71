package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matheus3301/pairchat/internal/conversation"
)

const messageColumns = `id, sender_id, receiver_id, body, timestamp`

// InsertMessage stores msg. The stored timestamp is the larger of
// msg.Timestamp and the newest timestamp already in the table, so
// timestamps never go backwards in insertion order.
func (db *DB) InsertMessage(ctx context.Context, msg *conversation.Message) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, receiver_id, body, timestamp)
		VALUES (?, ?, ?, MAX(?, COALESCE((SELECT MAX(timestamp) FROM messages), 0)))
		RETURNING id, timestamp`,
		msg.SenderID, msg.ReceiverID, msg.Text, msg.Timestamp).Scan(&msg.ID, &msg.Timestamp)
}

// MessagesBetween returns the pair's messages in either direction, ordered
// by timestamp then id.
func (db *DB) MessagesBetween(ctx context.Context, a, b int64) ([]conversation.Message, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY timestamp, id`, a, b, b, a)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
func (db *DB) LatestBetween(ctx context.Context, a, b int64) (*conversation.Message, error) {
	var m conversation.Message
	err := db.QueryRowContext(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`, a, b, b, a).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountFrom counts the messages sender has sent to receiver.
func (db *DB) CountFrom(ctx context.Context, senderID, receiverID int64) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE sender_id = ? AND receiver_id = ?`,
		senderID, receiverID).Scan(&n)
	return n, err
}
