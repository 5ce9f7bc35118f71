package wire

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AccountService_Register_FullMethodName = "/pairchat.v1.AccountService/Register"
	AccountService_Login_FullMethodName    = "/pairchat.v1.AccountService/Login"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token           string `json:"token"`
	UserID          int64  `json:"user_id"`
	ExpiresAtUnixMs int64  `json:"expires_at_unix_ms"`
}

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
}

var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pairchat.v1.AccountService",
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AccountService_Register_FullMethodName, AccountServiceServer.Register)},
		{MethodName: "Login", Handler: unary(AccountService_Login_FullMethodName, AccountServiceServer.Login)},
	},
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc}
}

func (c *accountServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AccountService_Register_FullMethodName, in, opts)
}

func (c *accountServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, AccountService_Login_FullMethodName, in, opts)
}
