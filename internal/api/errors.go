// Package api implements the pairchat.v1 gRPC services on top of the
// identity, connection and conversation components.
package api

import (
	"context"
	"errors"

	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/auth"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// ErrorDomain is the ErrorInfo domain of every tagged error.
const ErrorDomain = "pairchat"

var kindCodes = map[apperr.Kind]codes.Code{
	apperr.KindUserNotFound:            codes.NotFound,
	apperr.KindSelfTarget:              codes.InvalidArgument,
	apperr.KindAlreadyConnected:        codes.AlreadyExists,
	apperr.KindRequestExists:           codes.AlreadyExists,
	apperr.KindNotAuthorizedOrNotFound: codes.PermissionDenied,
	apperr.KindNotConnected:            codes.FailedPrecondition,
	apperr.KindEmptyMessage:            codes.InvalidArgument,
	apperr.KindStorageFailure:          codes.Unavailable,
}

// toStatus converts a component error into a gRPC status carrying an
// ErrorInfo whose reason is the error kind. Storage details stay in the
// daemon log.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := grpcstatus.FromError(err); ok {
		return err
	}

	kind := apperr.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = codes.Internal
	}
	msg := err.Error()
	switch kind {
	case apperr.KindStorageFailure:
		msg = apperr.ErrStorageFailure.Error()
	case apperr.KindUnknown:
		msg = "internal error"
	}

	st := grpcstatus.New(code, msg)
	if withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: string(kind), Domain: ErrorDomain}); derr == nil {
		st = withInfo
	}
	return st.Err()
}

// KindFromError recovers the error kind from a status produced by
// toStatus. It returns KindUnknown for any other error.
func KindFromError(err error) apperr.Kind {
	st, ok := grpcstatus.FromError(err)
	if !ok {
		return apperr.KindUnknown
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return apperr.Kind(info.GetReason())
		}
	}
	return apperr.KindUnknown
}

// AsAppError maps a gRPC error back to the matching sentinel so callers
// can use errors.Is on the client side. Unrecognized errors pass through.
func AsAppError(err error) error {
	if sentinel := apperr.FromKind(KindFromError(err)); sentinel != nil {
		return errors.Join(sentinel, err)
	}
	return err
}

func caller(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return auth.Principal{}, grpcstatus.Error(codes.Unauthenticated, "no authenticated caller")
	}
	return p, nil
}
