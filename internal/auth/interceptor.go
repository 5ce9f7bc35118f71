package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Interceptor authenticates calls with a bearer token and applies the
// per-user rate limit. Public methods pass through untouched.
type Interceptor struct {
	issuer  *Issuer
	limiter *RateLimiter
	logger  *zap.Logger
	public  map[string]struct{}
}

// NewInterceptor creates an Interceptor. publicMethods are full gRPC
// method names that need no token.
func NewInterceptor(issuer *Issuer, limiter *RateLimiter, logger *zap.Logger, publicMethods ...string) *Interceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}
	return &Interceptor{issuer: issuer, limiter: limiter, logger: logger, public: public}
}

// Unary returns the unary server interceptor.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := i.authorize(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// Stream returns the stream server interceptor.
func (i *Interceptor) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := i.authorize(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &principalStream{ServerStream: ss, ctx: ctx})
	}
}

func (i *Interceptor) authorize(ctx context.Context, method string) (context.Context, error) {
	if _, ok := i.public[method]; ok {
		return ctx, nil
	}

	token, err := bearerToken(ctx)
	if err != nil {
		return nil, err
	}
	p, err := i.issuer.Verify(token)
	if err != nil {
		i.logger.Debug("rejected token", zap.String("method", method), zap.Error(err))
		return nil, status.Error(codes.Unauthenticated, ErrInvalidToken.Error())
	}
	if !i.limiter.Allow(p.UserID, time.Now()) {
		i.logger.Warn("rate limit exceeded", zap.String("method", method), zap.Int64("user_id", p.UserID))
		return nil, status.Error(codes.ResourceExhausted, "too many requests")
	}
	return WithPrincipal(ctx, p), nil
}

var errNoToken = errors.New("authorization token is missing")

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, errNoToken.Error())
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated, errNoToken.Error())
	}
	token, found := strings.CutPrefix(values[0], "Bearer ")
	if !found || token == "" {
		return "", status.Error(codes.Unauthenticated, "authorization must be a bearer token")
	}
	return token, nil
}

type principalStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *principalStream) Context() context.Context {
	return s.ctx
}
