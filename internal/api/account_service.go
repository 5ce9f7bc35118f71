package api

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/matheus3301/pairchat/internal/auth"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/wire"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// AccountService implements registration and login.
type AccountService struct {
	ids    *identity.Service
	issuer *auth.Issuer
	logger *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(ids *identity.Service, issuer *auth.Issuer, logger *zap.Logger) *AccountService {
	return &AccountService{ids: ids, issuer: issuer, logger: logger}
}

func (s *AccountService) Register(ctx context.Context, req *wire.RegisterRequest) (*wire.RegisterResponse, error) {
	u, err := s.ids.Register(ctx, identity.Registration{Username: req.Username, Password: req.Password})
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return &wire.RegisterResponse{UserID: u.ID}, nil
	case errors.Is(err, identity.ErrUsernameTaken):
		return nil, grpcstatus.Error(codes.AlreadyExists, err.Error())
	case errors.As(err, &verrs):
		return nil, grpcstatus.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("register failed", zap.Error(err))
		return nil, grpcstatus.Error(codes.Internal, "registration failed")
	}
}

func (s *AccountService) Login(ctx context.Context, req *wire.LoginRequest) (*wire.LoginResponse, error) {
	u, err := s.ids.Authenticate(ctx, req.Username, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		return nil, grpcstatus.Error(codes.Unauthenticated, err.Error())
	}
	if err != nil {
		s.logger.Error("login failed", zap.Error(err))
		return nil, grpcstatus.Error(codes.Internal, "login failed")
	}
	token, expires, err := s.issuer.Issue(u.ID, u.Username)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "issue token: %v", err)
	}
	return &wire.LoginResponse{Token: token, UserID: u.ID, ExpiresAtUnixMs: expires.UnixMilli()}, nil
}
