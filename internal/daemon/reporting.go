package daemon

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reporter logs server-side failures and forwards them to Sentry when a
// DSN is configured.
type Reporter struct {
	enabled bool
	logger  *zap.Logger
}

// NewReporter initializes Sentry for dsn. An empty dsn only logs.
func NewReporter(dsn, profileName string, logger *zap.Logger) *Reporter {
	r := &Reporter{logger: logger}
	if dsn == "" {
		return r
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      profileName,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.Warn("sentry initialization failed", zap.Error(err))
		return r
	}
	logger.Info("sentry initialized")
	r.enabled = true
	return r
}

// Unary returns a unary interceptor reporting failed calls.
func (r *Reporter) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		r.report(info.FullMethod, err)
		return resp, err
	}
}

// Stream returns a stream interceptor reporting failed streams.
func (r *Reporter) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		r.report(info.FullMethod, err)
		return err
	}
}

// Flush waits for buffered events to be sent.
func (r *Reporter) Flush() {
	if r.enabled {
		sentry.Flush(2 * time.Second)
	}
}

// report handles server faults only; domain outcomes such as
// NOT_CONNECTED are normal answers.
func (r *Reporter) report(method string, err error) {
	if err == nil {
		return
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.Internal, codes.Unknown:
	default:
		return
	}

	r.logger.Error("request failed", zap.String("method", method), zap.Error(err))
	if !r.enabled {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("grpc.method", method)
		hub.CaptureException(err)
	})
}
