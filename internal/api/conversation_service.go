package api

import (
	"context"

	"github.com/matheus3301/pairchat/internal/bus"
	"github.com/matheus3301/pairchat/internal/conversation"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const watchBuffer = 64

// ConversationService exposes the conversation store and streams the
// caller's events.
type ConversationService struct {
	convo  *conversation.Store
	dir    identity.Directory
	bus    *bus.Bus
	logger *zap.Logger
}

// NewConversationService creates a new conversation service.
func NewConversationService(convo *conversation.Store, dir identity.Directory, b *bus.Bus, logger *zap.Logger) *ConversationService {
	return &ConversationService{convo: convo, dir: dir, bus: b, logger: logger}
}

func (s *ConversationService) Send(ctx context.Context, req *wire.SendRequest) (*wire.SendResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partnerID, err := resolvePartner(ctx, s.dir, req.PartnerUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	m, err := s.convo.Append(ctx, p.UserID, partnerID, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	if m == nil {
		return &wire.SendResponse{Noop: true}, nil
	}
	return &wire.SendResponse{Message: messageToWire(m)}, nil
}

func (s *ConversationService) History(ctx context.Context, req *wire.HistoryRequest) (*wire.HistoryResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partnerID, err := resolvePartner(ctx, s.dir, req.PartnerUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	msgs, err := s.convo.History(ctx, p.UserID, partnerID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.HistoryResponse{
		Messages: lo.Map(msgs, func(m conversation.Message, _ int) wire.Message {
			return *messageToWire(&m)
		}),
	}, nil
}

func (s *ConversationService) LastMessage(ctx context.Context, req *wire.LastMessageRequest) (*wire.LastMessageResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partnerID, err := resolvePartner(ctx, s.dir, req.PartnerUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	m, err := s.convo.LastMessage(ctx, p.UserID, partnerID)
	if err != nil {
		return nil, toStatus(err)
	}
	if m == nil {
		return &wire.LastMessageResponse{}, nil
	}
	return &wire.LastMessageResponse{Message: messageToWire(m)}, nil
}

func (s *ConversationService) UnreadCount(ctx context.Context, req *wire.UnreadCountRequest) (*wire.UnreadCountResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partnerID, err := resolvePartner(ctx, s.dir, req.PartnerUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	n, err := s.convo.UnreadCount(ctx, p.UserID, partnerID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.UnreadCountResponse{Count: n}, nil
}

// WatchEvents streams connection and message events involving the caller
// until the client goes away.
func (s *ConversationService) WatchEvents(_ *wire.WatchEventsRequest, stream grpc.ServerStreamingServer[wire.Event]) error {
	ctx := stream.Context()
	p, err := caller(ctx)
	if err != nil {
		return err
	}

	events, unsub := s.bus.Subscribe("", watchBuffer)
	defer unsub()
	s.logger.Debug("watch started", zap.Int64("user_id", p.UserID))

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-events:
			out, ok := eventForUser(evt, p.UserID)
			if !ok {
				continue
			}
			if err := stream.Send(out); err != nil {
				return err
			}
		}
	}
}

// eventForUser converts evt for the wire when it concerns userID.
func eventForUser(evt bus.Event, userID int64) (*wire.Event, bool) {
	out := &wire.Event{Kind: evt.Kind, TimestampUnixMs: evt.Timestamp.UnixMilli()}
	switch payload := evt.Payload.(type) {
	case bus.ConnectionChange:
		if !payload.Involves(userID) {
			return nil, false
		}
		out.Connection = &wire.ConnectionEvent{
			RequestID:  payload.RequestID,
			ProposerID: payload.ProposerID,
			TargetID:   payload.TargetID,
		}
	case bus.MessageAppended:
		if payload.SenderID != userID && payload.ReceiverID != userID {
			return nil, false
		}
		out.Message = &wire.MessageEvent{
			MessageID:  payload.MessageID,
			SenderID:   payload.SenderID,
			ReceiverID: payload.ReceiverID,
		}
	default:
		return nil, false
	}
	return out, true
}

func messageToWire(m *conversation.Message) *wire.Message {
	return &wire.Message{
		ID:              m.ID,
		SenderID:        m.SenderID,
		ReceiverID:      m.ReceiverID,
		Text:            m.Text,
		TimestampUnixMs: m.Timestamp,
	}
}
