package wire

import (
	"context"

	"google.golang.org/grpc"
)

const DaemonService_Status_FullMethodName = "/pairchat.v1.DaemonService/Status"

type StatusRequest struct{}

type StatusResponse struct {
	Profile      string `json:"profile"`
	State        string `json:"state"`
	UptimeMs     int64  `json:"uptime_ms"`
	UserCount    int64  `json:"user_count"`
	RequestCount int64  `json:"request_count"`
	MessageCount int64  `json:"message_count"`
}

// DaemonServiceServer is the server API for DaemonService.
type DaemonServiceServer interface {
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
}

var DaemonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pairchat.v1.DaemonService",
	HandlerType: (*DaemonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: unary(DaemonService_Status_FullMethodName, DaemonServiceServer.Status)},
	},
}

func RegisterDaemonServiceServer(s grpc.ServiceRegistrar, srv DaemonServiceServer) {
	s.RegisterService(&DaemonService_ServiceDesc, srv)
}

// DaemonServiceClient is the client API for DaemonService.
type DaemonServiceClient interface {
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
}

type daemonServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDaemonServiceClient(cc grpc.ClientConnInterface) DaemonServiceClient {
	return &daemonServiceClient{cc}
}

func (c *daemonServiceClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, DaemonService_Status_FullMethodName, in, opts)
}

// PublicMethods need no bearer token.
var PublicMethods = []string{
	AccountService_Register_FullMethodName,
	AccountService_Login_FullMethodName,
	DaemonService_Status_FullMethodName,
}
