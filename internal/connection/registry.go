package connection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/bus"
	"go.uber.org/zap"
)

// Publisher receives lifecycle events. *bus.Bus satisfies it.
type Publisher interface {
	Publish(evt bus.Event)
}

// Registry is the sole writer of request status.
type Registry struct {
	store  Store
	dir    Directory
	events Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistry creates a Registry. events may be nil.
func NewRegistry(store Store, dir Directory, events Publisher, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		dir:    dir,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Propose creates a pending request from proposerID to the named user.
// Uniqueness of the pair is left to the store; on a conflict the existing
// request decides between ErrAlreadyConnected and ErrRequestExists.
func (r *Registry) Propose(ctx context.Context, proposerID int64, targetUsername string) (string, error) {
	targetID, ok, err := r.dir.ResolveUserID(ctx, targetUsername)
	if err != nil {
		return "", apperr.Storage("resolve target", err)
	}
	if !ok {
		return "", apperr.ErrUserNotFound
	}
	if targetID == proposerID {
		return "", apperr.ErrSelfTarget
	}

	req := &Request{
		ID:         uuid.NewString(),
		ProposerID: proposerID,
		TargetID:   targetID,
		Status:     StatusPending,
		CreatedAt:  r.now().UnixMilli(),
	}
	err = r.store.InsertRequest(ctx, req)
	if errors.Is(err, ErrPairTaken) {
		return "", r.classifyConflict(ctx, req.Key())
	}
	if err != nil {
		return "", apperr.Storage("insert request", err)
	}

	r.logger.Info("connection proposed",
		zap.String("request_id", req.ID),
		zap.Int64("proposer_id", proposerID),
		zap.Int64("target_id", targetID))
	r.publish(bus.KindConnectionProposed, req)
	return req.ID, nil
}

func (r *Registry) classifyConflict(ctx context.Context, key PairKey) error {
	existing, err := r.store.RequestByPair(ctx, key)
	if err != nil {
		return apperr.Storage("read conflicting request", err)
	}
	if existing == nil {
		// Requests are never deleted, so the row the insert collided with
		// must still be there.
		return apperr.Storage("read conflicting request", errors.New("conflicting request not found"))
	}
	if existing.Status == StatusAccepted {
		return apperr.ErrAlreadyConnected
	}
	return apperr.ErrRequestExists
}

// ListIncoming returns the pending requests targeting userID.
func (r *Registry) ListIncoming(ctx context.Context, userID int64) ([]Incoming, error) {
	reqs, err := r.store.PendingIncoming(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list incoming", err)
	}
	out := make([]Incoming, 0, len(reqs))
	for _, req := range reqs {
		name, err := r.dir.DisplayName(ctx, req.ProposerID)
		if err != nil {
			return nil, apperr.Storage("proposer name", err)
		}
		out = append(out, Incoming{RequestID: req.ID, ProposerName: name, CreatedAt: req.CreatedAt})
	}
	return out, nil
}

// ListOutgoing returns every request userID proposed, in any status.
func (r *Registry) ListOutgoing(ctx context.Context, userID int64) ([]Outgoing, error) {
	reqs, err := r.store.Outgoing(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list outgoing", err)
	}
	out := make([]Outgoing, 0, len(reqs))
	for _, req := range reqs {
		name, err := r.dir.DisplayName(ctx, req.TargetID)
		if err != nil {
			return nil, apperr.Storage("target name", err)
		}
		out = append(out, Outgoing{RequestID: req.ID, TargetName: name, Status: req.Status, CreatedAt: req.CreatedAt})
	}
	return out, nil
}

// Accept moves a pending request to accepted. Only the target may do so.
func (r *Registry) Accept(ctx context.Context, requestID string, actingUserID int64) error {
	return r.resolve(ctx, requestID, actingUserID, StatusAccepted)
}

// Decline moves a pending request to declined. Only the target may do so.
func (r *Registry) Decline(ctx context.Context, requestID string, actingUserID int64) error {
	return r.resolve(ctx, requestID, actingUserID, StatusDeclined)
}

func (r *Registry) resolve(ctx context.Context, requestID string, actingUserID int64, to Status) error {
	req, err := r.store.ResolveRequest(ctx, requestID, actingUserID, to, r.now().UnixMilli())
	if err != nil {
		return apperr.Storage("resolve request", err)
	}
	// Unknown id, wrong actor and already-resolved all look the same.
	if req == nil {
		return apperr.ErrNotAuthorizedOrNotFound
	}

	kind := bus.KindConnectionAccepted
	if to == StatusDeclined {
		kind = bus.KindConnectionDeclined
	}
	r.logger.Info("connection resolved",
		zap.String("request_id", req.ID),
		zap.String("status", string(to)),
		zap.Int64("target_id", actingUserID))
	r.publish(kind, req)
	return nil
}

// IsConnected reports whether a and b share an accepted request. It is
// symmetric and false for a == b.
func (r *Registry) IsConnected(ctx context.Context, a, b int64) (bool, error) {
	if a == b {
		return false, nil
	}
	ok, err := r.store.HasAccepted(ctx, KeyFor(a, b))
	if err != nil {
		return false, apperr.Storage("check connection", err)
	}
	return ok, nil
}

// ListAcceptedPartners returns everyone userID is connected to.
func (r *Registry) ListAcceptedPartners(ctx context.Context, userID int64) ([]Partner, error) {
	ids, err := r.store.AcceptedPartnerIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list partners", err)
	}
	out := make([]Partner, 0, len(ids))
	for _, id := range ids {
		name, err := r.dir.DisplayName(ctx, id)
		if err != nil {
			return nil, apperr.Storage("partner name", err)
		}
		out = append(out, Partner{ID: id, Name: name})
	}
	return out, nil
}

func (r *Registry) publish(kind string, req *Request) {
	if r.events == nil {
		return
	}
	r.events.Publish(bus.Event{
		Kind: kind,
		Payload: bus.ConnectionChange{
			RequestID:  req.ID,
			ProposerID: req.ProposerID,
			TargetID:   req.TargetID,
		},
	})
}
