package api

import (
	"context"

	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/connection"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/wire"
	"github.com/samber/lo"
)

// ConnectionService exposes the connection registry to the caller named
// by the bearer token.
type ConnectionService struct {
	registry *connection.Registry
	dir      identity.Directory
}

// NewConnectionService creates a new connection service.
func NewConnectionService(registry *connection.Registry, dir identity.Directory) *ConnectionService {
	return &ConnectionService{registry: registry, dir: dir}
}

func (s *ConnectionService) Propose(ctx context.Context, req *wire.ProposeRequest) (*wire.ProposeResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.registry.Propose(ctx, p.UserID, req.TargetUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.ProposeResponse{RequestID: id}, nil
}

func (s *ConnectionService) ListIncoming(ctx context.Context, _ *wire.ListIncomingRequest) (*wire.ListIncomingResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in, err := s.registry.ListIncoming(ctx, p.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.ListIncomingResponse{
		Requests: lo.Map(in, func(r connection.Incoming, _ int) wire.IncomingRequest {
			return wire.IncomingRequest{RequestID: r.RequestID, ProposerName: r.ProposerName, CreatedAtUnixMs: r.CreatedAt}
		}),
	}, nil
}

func (s *ConnectionService) ListOutgoing(ctx context.Context, _ *wire.ListOutgoingRequest) (*wire.ListOutgoingResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.registry.ListOutgoing(ctx, p.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.ListOutgoingResponse{
		Requests: lo.Map(out, func(r connection.Outgoing, _ int) wire.OutgoingRequest {
			return wire.OutgoingRequest{RequestID: r.RequestID, TargetName: r.TargetName, Status: string(r.Status), CreatedAtUnixMs: r.CreatedAt}
		}),
	}, nil
}

func (s *ConnectionService) Accept(ctx context.Context, req *wire.AcceptRequest) (*wire.AcceptResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Accept(ctx, req.RequestID, p.UserID); err != nil {
		return nil, toStatus(err)
	}
	return &wire.AcceptResponse{}, nil
}

func (s *ConnectionService) Decline(ctx context.Context, req *wire.DeclineRequest) (*wire.DeclineResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Decline(ctx, req.RequestID, p.UserID); err != nil {
		return nil, toStatus(err)
	}
	return &wire.DeclineResponse{}, nil
}

func (s *ConnectionService) ListPartners(ctx context.Context, _ *wire.ListPartnersRequest) (*wire.ListPartnersResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partners, err := s.registry.ListAcceptedPartners(ctx, p.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.ListPartnersResponse{
		Partners: lo.Map(partners, func(pt connection.Partner, _ int) wire.Partner {
			return wire.Partner{UserID: pt.ID, Username: pt.Name}
		}),
	}, nil
}

func (s *ConnectionService) IsConnected(ctx context.Context, req *wire.IsConnectedRequest) (*wire.IsConnectedResponse, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	partnerID, err := resolvePartner(ctx, s.dir, req.PartnerUsername)
	if err != nil {
		return nil, toStatus(err)
	}
	ok, err := s.registry.IsConnected(ctx, p.UserID, partnerID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &wire.IsConnectedResponse{Connected: ok}, nil
}

func resolvePartner(ctx context.Context, dir identity.Directory, username string) (int64, error) {
	id, ok, err := dir.ResolveUserID(ctx, username)
	if err != nil {
		return 0, apperr.Storage("resolve partner", err)
	}
	if !ok {
		return 0, apperr.ErrUserNotFound
	}
	return id, nil
}
