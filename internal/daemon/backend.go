package daemon

import (
	"context"
	"fmt"

	"github.com/matheus3301/pairchat/internal/api"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/connection"
	"github.com/matheus3301/pairchat/internal/conversation"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/matheus3301/pairchat/internal/store"
	"github.com/matheus3301/pairchat/internal/store/pgstore"
)

// Backend is everything the daemon needs from persistence.
type Backend interface {
	identity.UserStore
	connection.Store
	conversation.Repository
	api.Counter
	Migrate() (*store.MigrateResult, error)
	Close() error
}

var (
	_ Backend = (*store.DB)(nil)
	_ Backend = (*pgstore.Store)(nil)
)

// openBackend opens the configured storage driver. SQLite defaults to the
// profile's pairchat.db.
func openBackend(ctx context.Context, cfg config.Storage, profileName string) (Backend, string, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		path := cfg.DSN
		if path == "" {
			path = profile.DBPath(profileName)
		}
		db, err := store.Open(path)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	case config.DriverPostgres:
		s, err := pgstore.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, "", err
		}
		return s, "postgres", nil
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
