package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/matheus3301/pairchat/internal/connection"
)

const requestColumns = `id, proposer_id, target_id, status, created_at, resolved_at`

// InsertRequest stores a pending request, or returns
// connection.ErrPairTaken when the pair already has one.
func (s *Store) InsertRequest(ctx context.Context, r *connection.Request) error {
	key := r.Key()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO connection_requests (id, proposer_id, target_id, pair_lo, pair_hi, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.ProposerID, r.TargetID, key.Lo, key.Hi, string(r.Status), r.CreatedAt)
	if isUniqueViolation(err) {
		return connection.ErrPairTaken
	}
	return err
}

// RequestByPair returns the request for the pair, or nil.
func (s *Store) RequestByPair(ctx context.Context, key connection.PairKey) (*connection.Request, error) {
	return scanOptionalRequest(s.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM connection_requests WHERE pair_lo = $1 AND pair_hi = $2`,
		key.Lo, key.Hi))
}

// ResolveRequest moves a pending request addressed to targetID to status
// to, or returns nil when nothing matched.
func (s *Store) ResolveRequest(ctx context.Context, id string, targetID int64, to connection.Status, at int64) (*connection.Request, error) {
	return scanOptionalRequest(s.pool.QueryRow(ctx, `
		UPDATE connection_requests SET status = $1, resolved_at = $2
		WHERE id = $3 AND target_id = $4 AND status = 'pending'
		RETURNING `+requestColumns,
		string(to), at, id, targetID))
}

// PendingIncoming lists the pending requests targeting userID, oldest first.
func (s *Store) PendingIncoming(ctx context.Context, userID int64) ([]connection.Request, error) {
	return s.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM connection_requests
		WHERE target_id = $1 AND status = 'pending'
		ORDER BY created_at, seq`, userID)
}

// Outgoing lists every request userID proposed, oldest first.
func (s *Store) Outgoing(ctx context.Context, userID int64) ([]connection.Request, error) {
	return s.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM connection_requests
		WHERE proposer_id = $1
		ORDER BY created_at, seq`, userID)
}

// HasAccepted reports whether the pair has an accepted request.
func (s *Store) HasAccepted(ctx context.Context, key connection.PairKey) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE pair_lo = $1 AND pair_hi = $2 AND status = 'accepted')`,
		key.Lo, key.Hi).Scan(&ok)
	return ok, err
}

// AcceptedPartnerIDs lists the users connected to userID.
func (s *Store) AcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT CASE WHEN proposer_id = $1 THEN target_id ELSE proposer_id END
		FROM connection_requests
		WHERE (proposer_id = $1 OR target_id = $1) AND status = 'accepted'
		ORDER BY created_at, seq`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]connection.Request, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []connection.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanOptionalRequest(row pgx.Row) (*connection.Request, error) {
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func scanRequest(row pgx.Row) (*connection.Request, error) {
	var (
		r      connection.Request
		status string
	)
	if err := row.Scan(&r.ID, &r.ProposerID, &r.TargetID, &status, &r.CreatedAt, &r.ResolvedAt); err != nil {
		return nil, err
	}
	r.Status = connection.Status(status)
	return &r, nil
}
