package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matheus3301/pairchat/internal/connection"
)

const requestColumns = `id, proposer_id, target_id, status, created_at, resolved_at`

// InsertRequest stores a pending request. A second request for the same
// unordered pair fails with ErrPairTaken.
func (db *DB) InsertRequest(ctx context.Context, r *connection.Request) error {
	key := r.Key()
	_, err := db.ExecContext(ctx, `
		INSERT INTO connection_requests (id, proposer_id, target_id, pair_lo, pair_hi, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProposerID, r.TargetID, key.Lo, key.Hi, string(r.Status), r.CreatedAt)
	if isUniqueViolation(err) {
		return ErrPairTaken
	}
	return err
}

// RequestByPair returns the request for the pair, or nil.
func (db *DB) RequestByPair(ctx context.Context, key connection.PairKey) (*connection.Request, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM connection_requests WHERE pair_lo = ? AND pair_hi = ?`,
		key.Lo, key.Hi)
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// ResolveRequest moves a pending request addressed to targetID to status
// to. It returns nil when no pending request with that id targets the user.
func (db *DB) ResolveRequest(ctx context.Context, id string, targetID int64, to connection.Status, at int64) (*connection.Request, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE connection_requests SET status = ?, resolved_at = ?
		WHERE id = ? AND target_id = ? AND status = 'pending'
		RETURNING `+requestColumns,
		string(to), at, id, targetID)
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// PendingIncoming lists the pending requests targeting userID, oldest first.
func (db *DB) PendingIncoming(ctx context.Context, userID int64) ([]connection.Request, error) {
	return db.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM connection_requests
		WHERE target_id = ? AND status = 'pending'
		ORDER BY created_at, rowid`, userID)
}

// Outgoing lists every request userID proposed, oldest first.
func (db *DB) Outgoing(ctx context.Context, userID int64) ([]connection.Request, error) {
	return db.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM connection_requests
		WHERE proposer_id = ?
		ORDER BY created_at, rowid`, userID)
}

// HasAccepted reports whether the pair has an accepted request.
func (db *DB) HasAccepted(ctx context.Context, key connection.PairKey) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM connection_requests
		WHERE pair_lo = ? AND pair_hi = ? AND status = 'accepted'`,
		key.Lo, key.Hi).Scan(&n)
	return n > 0, err
}

// AcceptedPartnerIDs lists the users connected to userID, in order of
// their request's creation.
func (db *DB) AcceptedPartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT CASE WHEN proposer_id = ? THEN target_id ELSE proposer_id END
		FROM connection_requests
		WHERE (proposer_id = ? OR target_id = ?) AND status = 'accepted'
		ORDER BY created_at, rowid`, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]connection.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*connection.Request, error) {
	var (
		r      connection.Request
		status string
	)
	if err := s.Scan(&r.ID, &r.ProposerID, &r.TargetID, &status, &r.CreatedAt, &r.ResolvedAt); err != nil {
		return nil, err
	}
	r.Status = connection.Status(status)
	return &r, nil
}
