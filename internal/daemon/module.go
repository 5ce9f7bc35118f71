// Package daemon wires pairchatd together with fx: profile lock, storage,
// domain components, auth and the gRPC server.
package daemon

import (
	"context"
	"fmt"

	"github.com/matheus3301/pairchat/internal/api"
	"github.com/matheus3301/pairchat/internal/auth"
	"github.com/matheus3301/pairchat/internal/bus"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/connection"
	"github.com/matheus3301/pairchat/internal/conversation"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/lock"
	"github.com/matheus3301/pairchat/internal/logging"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/matheus3301/pairchat/internal/status"
	"github.com/matheus3301/pairchat/internal/wire"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
	SocketPath  string         // optional override for testing; empty = use default
	Config      *config.Config // optional; nil = load ~/.pairchat/config.toml
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideBackend,
			provideIdentity,
			provideDirectory,
			provideRegistry,
			provideConversation,
			provideIssuer,
			provideGuard,
			provideReporter,
			provideAccountService,
			provideConnectionService,
			provideConversationService,
			provideDaemonService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	if p.Config != nil {
		return p.Config, p.Config.Validate()
	}
	return config.LoadOrDefault(profile.ConfigPath())
}

func provideLogger(p Params, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName, cfg.Daemon.LogLevel)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideBackend depends on the lock so only the lock holder touches the
// database.
func provideBackend(p Params, cfg *config.Config, _ *lock.Lock, m *status.Machine, logger *zap.Logger) (Backend, error) {
	backend, where, err := openBackend(context.Background(), cfg.Storage, p.ProfileName)
	if err != nil {
		_ = m.Transition(status.Error)
		return nil, err
	}

	if err := m.Transition(status.Migrating); err != nil {
		_ = backend.Close()
		return nil, err
	}
	result, err := backend.Migrate()
	if err != nil {
		_ = m.Transition(status.Error)
		_ = backend.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("driver", cfg.Storage.Driver), zap.String("path", where))
	return backend, nil
}

func provideIdentity(backend Backend, logger *zap.Logger) *identity.Service {
	return identity.NewService(backend, 0, logger)
}

func provideDirectory(s *identity.Service) identity.Directory {
	return s
}

func provideRegistry(backend Backend, dir identity.Directory, b *bus.Bus, logger *zap.Logger) *connection.Registry {
	return connection.NewRegistry(backend, dir, b, logger)
}

func provideConversation(backend Backend, reg *connection.Registry, b *bus.Bus, logger *zap.Logger) *conversation.Store {
	return conversation.NewStore(backend, reg, b, logger)
}

func provideIssuer(p Params, cfg *config.Config, _ *lock.Lock) (*auth.Issuer, error) {
	key, err := auth.LoadOrCreateKey(profile.SigningKeyPath(p.ProfileName))
	if err != nil {
		return nil, err
	}
	return auth.NewIssuer(key, cfg.Auth.TokenTTL), nil
}

func provideGuard(issuer *auth.Issuer, cfg *config.Config, logger *zap.Logger) *auth.Interceptor {
	limiter := auth.NewRateLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)
	return auth.NewInterceptor(issuer, limiter, logger, wire.PublicMethods...)
}

func provideReporter(p Params, cfg *config.Config, logger *zap.Logger) *Reporter {
	return NewReporter(cfg.Daemon.SentryDSN, p.ProfileName, logger)
}

func provideAccountService(ids *identity.Service, issuer *auth.Issuer, logger *zap.Logger) *api.AccountService {
	return api.NewAccountService(ids, issuer, logger)
}

func provideConnectionService(reg *connection.Registry, dir identity.Directory) *api.ConnectionService {
	return api.NewConnectionService(reg, dir)
}

func provideConversationService(convo *conversation.Store, dir identity.Directory, b *bus.Bus, logger *zap.Logger) *api.ConversationService {
	return api.NewConversationService(convo, dir, b, logger)
}

func provideDaemonService(p Params, m *status.Machine, backend Backend, logger *zap.Logger) *api.DaemonService {
	return api.NewDaemonService(p.ProfileName, m, backend, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, backend Backend, reporter *Reporter, machine *status.Machine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Start gRPC server in background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
					_ = machine.Transition(status.Error)
				}
			}()
			if err := machine.Transition(status.Ready); err != nil {
				return err
			}
			logger.Info("daemon ready", zap.String("addr", srv.Addr()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = machine.Transition(status.Draining)
			srv.Stop(ctx)
			if err := backend.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			reporter.Flush()
			_ = machine.Transition(status.Stopped)
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
