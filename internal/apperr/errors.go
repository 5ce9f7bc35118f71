// Package apperr declares the error kinds surfaced by the connection and
// conversation components. Callers match them with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrSelfTarget              = errors.New("cannot propose a connection to yourself")
	ErrAlreadyConnected        = errors.New("already connected")
	ErrRequestExists           = errors.New("a request already exists for this pair")
	ErrNotAuthorizedOrNotFound = errors.New("request not found or not actionable")
	ErrNotConnected            = errors.New("not connected")
	ErrEmptyMessage            = errors.New("empty message")
	ErrStorageFailure          = errors.New("storage failure")
)

// Kind is the stable name of an error kind, used on the wire.
type Kind string

const (
	KindUnknown                 Kind = "UNKNOWN"
	KindUserNotFound            Kind = "USER_NOT_FOUND"
	KindSelfTarget              Kind = "SELF_TARGET"
	KindAlreadyConnected        Kind = "ALREADY_CONNECTED"
	KindRequestExists           Kind = "REQUEST_EXISTS"
	KindNotAuthorizedOrNotFound Kind = "NOT_AUTHORIZED_OR_NOT_FOUND"
	KindNotConnected            Kind = "NOT_CONNECTED"
	KindEmptyMessage            Kind = "EMPTY_MESSAGE"
	KindStorageFailure          Kind = "STORAGE_FAILURE"
)

var kinds = []struct {
	kind Kind
	err  error
}{
	{KindUserNotFound, ErrUserNotFound},
	{KindSelfTarget, ErrSelfTarget},
	{KindAlreadyConnected, ErrAlreadyConnected},
	{KindRequestExists, ErrRequestExists},
	{KindNotAuthorizedOrNotFound, ErrNotAuthorizedOrNotFound},
	{KindNotConnected, ErrNotConnected},
	{KindEmptyMessage, ErrEmptyMessage},
	{KindStorageFailure, ErrStorageFailure},
}

// KindOf returns the kind of err, or KindUnknown when err is not one of the
// sentinels declared here.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}

// FromKind returns the sentinel for k, or nil for unknown kinds.
func FromKind(k Kind) error {
	for _, kk := range kinds {
		if kk.kind == k {
			return kk.err
		}
	}
	return nil
}

// Storage wraps a persistence error as ErrStorageFailure, keeping the
// original in the chain. Nil stays nil, and errors already tagged as storage
// failures only gain the op prefix.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageFailure) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}
