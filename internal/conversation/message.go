//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_conversation.go -package=mocks

// Package conversation stores the messages exchanged between connected
// users. Every write and every gated read consults the connection gate.
package conversation

import (
	"context"
	"time"
)

// Message is one directed unit of content. Timestamp is unix milliseconds
// and never decreases in insertion order.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Text       string
	Timestamp  int64
}

// Time returns the message timestamp as a time.Time.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// Gate answers whether two users may exchange messages.
// connection.Registry satisfies it.
type Gate interface {
	IsConnected(ctx context.Context, a, b int64) (bool, error)
}

// Repository persists messages.
type Repository interface {
	// InsertMessage stores msg with timestamp max(msg.Timestamp, latest stored
	// timestamp), computed in the insert itself, and fills in msg.ID and the
	// final msg.Timestamp.
	InsertMessage(ctx context.Context, msg *Message) error
	// MessagesBetween returns the messages of the pair in either
	// direction, by timestamp then id.
	MessagesBetween(ctx context.Context, a, b int64) ([]Message, error)
	// LatestBetween returns the newest message of the pair, or nil.
	LatestBetween(ctx context.Context, a, b int64) (*Message, error)
	// CountFrom counts messages from sender to receiver.
	CountFrom(ctx context.Context, senderID, receiverID int64) (int64, error)
}
