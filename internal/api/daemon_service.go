package api

import (
	"context"
	"time"

	"github.com/matheus3301/pairchat/internal/status"
	"github.com/matheus3301/pairchat/internal/store"
	"github.com/matheus3301/pairchat/internal/wire"
	"go.uber.org/zap"
)

// Counter reports table sizes. Both storage backends implement it.
type Counter interface {
	Counts(ctx context.Context) (*store.Counts, error)
}

// DaemonService reports daemon status.
type DaemonService struct {
	profile   string
	startedAt time.Time
	machine   *status.Machine
	counter   Counter
	logger    *zap.Logger
}

// NewDaemonService creates a new daemon service.
func NewDaemonService(profile string, machine *status.Machine, counter Counter, logger *zap.Logger) *DaemonService {
	return &DaemonService{
		profile:   profile,
		startedAt: time.Now(),
		machine:   machine,
		counter:   counter,
		logger:    logger,
	}
}

func (s *DaemonService) Status(ctx context.Context, _ *wire.StatusRequest) (*wire.StatusResponse, error) {
	resp := &wire.StatusResponse{
		Profile:  s.profile,
		State:    string(s.machine.Current()),
		UptimeMs: time.Since(s.startedAt).Milliseconds(),
	}

	// Counts are best effort.
	if s.counter != nil {
		if c, err := s.counter.Counts(ctx); err == nil {
			resp.UserCount = c.Users
			resp.RequestCount = c.Requests
			resp.MessageCount = c.Messages
		} else {
			s.logger.Warn("status counts unavailable", zap.Error(err))
		}
	}
	return resp, nil
}
