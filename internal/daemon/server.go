package daemon

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/matheus3301/pairchat/internal/api"
	"github.com/matheus3301/pairchat/internal/auth"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/matheus3301/pairchat/internal/wire"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Server manages the gRPC server lifecycle for a profile daemon.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	socketPath string
	addr       string
	logger     *zap.Logger
}

// Services groups the gRPC service implementations.
type Services struct {
	fx.In

	Account      *api.AccountService
	Connection   *api.ConnectionService
	Conversation *api.ConversationService
	Daemon       *api.DaemonService
}

// NewServer creates a gRPC server on the configured listener: the
// profile's Unix domain socket by default, or a TCP address.
func NewServer(p Params, cfg *config.Config, logger *zap.Logger, guard *auth.Interceptor, reporter *Reporter, svcs Services) (*Server, error) {
	listener, socketPath, err := listen(p, cfg.Daemon.Listen)
	if err != nil {
		return nil, err
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(reporter.Unary(), guard.Unary()),
		grpc.ChainStreamInterceptor(reporter.Stream(), guard.Stream()),
	)
	wire.RegisterAccountServiceServer(srv, svcs.Account)
	wire.RegisterConnectionServiceServer(srv, svcs.Connection)
	wire.RegisterConversationServiceServer(srv, svcs.Conversation)
	wire.RegisterDaemonServiceServer(srv, svcs.Daemon)

	return &Server{
		grpcServer: srv,
		listener:   listener,
		socketPath: socketPath,
		addr:       listener.Addr().String(),
		logger:     logger,
	}, nil
}

func listen(p Params, setting string) (net.Listener, string, error) {
	if addr, ok := strings.CutPrefix(setting, "tcp://"); ok {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, "", fmt.Errorf("listen tcp: %w", err)
		}
		return l, "", nil
	}

	socketPath := p.SocketPath
	if socketPath == "" {
		socketPath = profile.SocketPath(p.ProfileName)
	}

	// Clean stale socket if it exists. The profile lock guarantees no live
	// daemon owns it.
	if _, err := os.Stat(socketPath); err == nil {
		_ = os.Remove(socketPath)
	}

	l, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, "", fmt.Errorf("listen unix socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = l.Close()
		return nil, "", fmt.Errorf("chmod socket: %w", err)
	}
	return l, socketPath, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Start begins serving gRPC requests. Blocks until stopped.
func (s *Server) Start() error {
	s.logger.Info("gRPC server starting", zap.String("addr", s.addr))
	return s.grpcServer.Serve(s.listener)
}

// Stop performs a graceful shutdown and removes the socket file. Open
// event streams are cut when ctx expires.
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("gRPC server stopping")
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
	if s.socketPath != "" {
		_ = os.Remove(s.socketPath)
	}
}
