// Package connection implements the registry of connection requests between
// users. For any unordered pair of users at most one request ever exists,
// and only an accepted request lets the pair exchange messages.
package connection

import (
	"context"
	"errors"
)

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// ErrPairTaken is returned by a Store when the pair key already has a
// request. The registry turns it into a domain error.
var ErrPairTaken = errors.New("pair already has a connection request")

// PairKey is the canonical key of an unordered pair: Lo < Hi.
type PairKey struct {
	Lo int64
	Hi int64
}

// KeyFor returns the pair key of a and b, in either order.
func KeyFor(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Request is one proposal between an ordered pair of users.
type Request struct {
	ID         string
	ProposerID int64
	TargetID   int64
	Status     Status
	CreatedAt  int64
	ResolvedAt int64
}

// Key returns the request's unordered pair key.
func (r *Request) Key() PairKey {
	return KeyFor(r.ProposerID, r.TargetID)
}

// Incoming is a pending request as seen by its target.
type Incoming struct {
	RequestID    string
	ProposerName string
	CreatedAt    int64
}

// Outgoing is a request as seen by its proposer.
type Outgoing struct {
	RequestID  string
	TargetName string
	Status     Status
	CreatedAt  int64
}

// Partner is a user with whom an accepted connection exists.
type Partner struct {
	ID   int64
	Name string
}

// Store persists requests. Lists are in creation order. Lookups return
// (nil, nil) when no row matches.
type Store interface {
	// InsertRequest stores a pending request, or returns ErrPairTaken
	// when the pair key is already used.
	InsertRequest(ctx context.Context, r *Request) error
	RequestByPair(ctx context.Context, key PairKey) (*Request, error)
	// ResolveRequest moves a pending request targeting targetID to the
	// given status in one conditional update. It returns the updated
	// request, or nil when nothing matched.
	ResolveRequest(ctx context.Context, id string, targetID int64, to Status, at int64) (*Request, error)
	PendingIncoming(ctx context.Context, userID int64) ([]Request, error)
	Outgoing(ctx context.Context, userID int64) ([]Request, error)
	HasAccepted(ctx context.Context, key PairKey) (bool, error)
	AcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Directory resolves usernames. identity.Service satisfies it.
type Directory interface {
	ResolveUserID(ctx context.Context, username string) (int64, bool, error)
	DisplayName(ctx context.Context, id int64) (string, error)
}
