package bus

import "time"

// Event kinds published by the daemon. Subscribers filter by prefix, so
// "connection." receives every connection lifecycle event.
const (
	KindStatusChanged      = "daemon.status_changed"
	KindConnectionProposed = "connection.proposed"
	KindConnectionAccepted = "connection.accepted"
	KindConnectionDeclined = "connection.declined"
	KindMessageAppended    = "message.appended"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// ConnectionChange is the payload of connection.* events.
type ConnectionChange struct {
	RequestID  string
	ProposerID int64
	TargetID   int64
}

// Involves reports whether userID is either side of the request.
func (c ConnectionChange) Involves(userID int64) bool {
	return c.ProposerID == userID || c.TargetID == userID
}

// MessageAppended is the payload of message.appended events.
type MessageAppended struct {
	MessageID  int64
	SenderID   int64
	ReceiverID int64
	Timestamp  int64
}
