package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/bus"
	"go.uber.org/zap"
)

// Publisher receives message events. *bus.Bus satisfies it.
type Publisher interface {
	Publish(evt bus.Event)
}

// Store owns messages. It never caches connectivity.
type Store struct {
	repo   Repository
	gate   Gate
	events Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a Store. events may be nil.
func NewStore(repo Repository, gate Gate, events Publisher, logger *zap.Logger) *Store {
	return &Store{repo: repo, gate: gate, events: events, logger: logger, now: time.Now}
}

// Append stores a message from sender to receiver. Blank text is a no-op
// and returns (nil, nil). Otherwise the pair must be connected at write
// time or ErrNotConnected is returned.
func (s *Store) Append(ctx context.Context, senderID, receiverID int64, text string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	ok, err := s.gate.IsConnected(ctx, senderID, receiverID)
	if err != nil {
		return nil, apperr.Storage("check gate", err)
	}
	if !ok {
		return nil, apperr.ErrNotConnected
	}

	m := &Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  s.now().UnixMilli(),
	}
	if err := s.repo.InsertMessage(ctx, m); err != nil {
		s.logger.Error("append message", zap.Error(err),
			zap.Int64("sender_id", senderID), zap.Int64("receiver_id", receiverID))
		return nil, apperr.Storage("append message", err)
	}

	if s.events != nil {
		s.events.Publish(bus.Event{
			Kind: bus.KindMessageAppended,
			Payload: bus.MessageAppended{
				MessageID:  m.ID,
				SenderID:   m.SenderID,
				ReceiverID: m.ReceiverID,
				Timestamp:  m.Timestamp,
			},
		})
	}
	return m, nil
}

// History returns the pair's messages oldest first, or an empty slice when
// the pair is not connected.
func (s *Store) History(ctx context.Context, userID, partnerID int64) ([]Message, error) {
	ok, err := s.gate.IsConnected(ctx, userID, partnerID)
	if err != nil {
		return nil, apperr.Storage("check gate", err)
	}
	if !ok {
		return []Message{}, nil
	}
	msgs, err := s.repo.MessagesBetween(ctx, userID, partnerID)
	if err != nil {
		return nil, apperr.Storage("load history", err)
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

// LastMessage returns the newest message between the pair, or nil. It
// does not consult the gate; it backs list previews.
func (s *Store) LastMessage(ctx context.Context, userID, partnerID int64) (*Message, error) {
	m, err := s.repo.LatestBetween(ctx, userID, partnerID)
	if err != nil {
		return nil, apperr.Storage("last message", err)
	}
	return m, nil
}

// UnreadCount returns how many messages partnerID has ever sent to userID.
// Nothing marks messages read, so the count only grows.
func (s *Store) UnreadCount(ctx context.Context, userID, partnerID int64) (int64, error) {
	n, err := s.repo.CountFrom(ctx, partnerID, userID)
	if err != nil {
		return 0, apperr.Storage("unread count", err)
	}
	return n, nil
}
