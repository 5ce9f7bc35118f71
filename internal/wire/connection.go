package wire

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ConnectionService_Propose_FullMethodName      = "/pairchat.v1.ConnectionService/Propose"
	ConnectionService_ListIncoming_FullMethodName = "/pairchat.v1.ConnectionService/ListIncoming"
	ConnectionService_ListOutgoing_FullMethodName = "/pairchat.v1.ConnectionService/ListOutgoing"
	ConnectionService_Accept_FullMethodName       = "/pairchat.v1.ConnectionService/Accept"
	ConnectionService_Decline_FullMethodName      = "/pairchat.v1.ConnectionService/Decline"
	ConnectionService_ListPartners_FullMethodName = "/pairchat.v1.ConnectionService/ListPartners"
	ConnectionService_IsConnected_FullMethodName  = "/pairchat.v1.ConnectionService/IsConnected"
)

type ProposeRequest struct {
	TargetUsername string `json:"target_username"`
}

type ProposeResponse struct {
	RequestID string `json:"request_id"`
}

type ListIncomingRequest struct{}

type IncomingRequest struct {
	RequestID       string `json:"request_id"`
	ProposerName    string `json:"proposer_name"`
	CreatedAtUnixMs int64  `json:"created_at_unix_ms"`
}

type ListIncomingResponse struct {
	Requests []IncomingRequest `json:"requests"`
}

type ListOutgoingRequest struct{}

type OutgoingRequest struct {
	RequestID       string `json:"request_id"`
	TargetName      string `json:"target_name"`
	Status          string `json:"status"`
	CreatedAtUnixMs int64  `json:"created_at_unix_ms"`
}

type ListOutgoingResponse struct {
	Requests []OutgoingRequest `json:"requests"`
}

type AcceptRequest struct {
	RequestID string `json:"request_id"`
}

type AcceptResponse struct{}

type DeclineRequest struct {
	RequestID string `json:"request_id"`
}

type DeclineResponse struct{}

type ListPartnersRequest struct{}

type Partner struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type ListPartnersResponse struct {
	Partners []Partner `json:"partners"`
}

type IsConnectedRequest struct {
	PartnerUsername string `json:"partner_username"`
}

type IsConnectedResponse struct {
	Connected bool `json:"connected"`
}

// ConnectionServiceServer is the server API for ConnectionService.
type ConnectionServiceServer interface {
	Propose(context.Context, *ProposeRequest) (*ProposeResponse, error)
	ListIncoming(context.Context, *ListIncomingRequest) (*ListIncomingResponse, error)
	ListOutgoing(context.Context, *ListOutgoingRequest) (*ListOutgoingResponse, error)
	Accept(context.Context, *AcceptRequest) (*AcceptResponse, error)
	Decline(context.Context, *DeclineRequest) (*DeclineResponse, error)
	ListPartners(context.Context, *ListPartnersRequest) (*ListPartnersResponse, error)
	IsConnected(context.Context, *IsConnectedRequest) (*IsConnectedResponse, error)
}

var ConnectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pairchat.v1.ConnectionService",
	HandlerType: (*ConnectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Propose", Handler: unary(ConnectionService_Propose_FullMethodName, ConnectionServiceServer.Propose)},
		{MethodName: "ListIncoming", Handler: unary(ConnectionService_ListIncoming_FullMethodName, ConnectionServiceServer.ListIncoming)},
		{MethodName: "ListOutgoing", Handler: unary(ConnectionService_ListOutgoing_FullMethodName, ConnectionServiceServer.ListOutgoing)},
		{MethodName: "Accept", Handler: unary(ConnectionService_Accept_FullMethodName, ConnectionServiceServer.Accept)},
		{MethodName: "Decline", Handler: unary(ConnectionService_Decline_FullMethodName, ConnectionServiceServer.Decline)},
		{MethodName: "ListPartners", Handler: unary(ConnectionService_ListPartners_FullMethodName, ConnectionServiceServer.ListPartners)},
		{MethodName: "IsConnected", Handler: unary(ConnectionService_IsConnected_FullMethodName, ConnectionServiceServer.IsConnected)},
	},
}

func RegisterConnectionServiceServer(s grpc.ServiceRegistrar, srv ConnectionServiceServer) {
	s.RegisterService(&ConnectionService_ServiceDesc, srv)
}

// ConnectionServiceClient is the client API for ConnectionService.
type ConnectionServiceClient interface {
	Propose(ctx context.Context, in *ProposeRequest, opts ...grpc.CallOption) (*ProposeResponse, error)
	ListIncoming(ctx context.Context, in *ListIncomingRequest, opts ...grpc.CallOption) (*ListIncomingResponse, error)
	ListOutgoing(ctx context.Context, in *ListOutgoingRequest, opts ...grpc.CallOption) (*ListOutgoingResponse, error)
	Accept(ctx context.Context, in *AcceptRequest, opts ...grpc.CallOption) (*AcceptResponse, error)
	Decline(ctx context.Context, in *DeclineRequest, opts ...grpc.CallOption) (*DeclineResponse, error)
	ListPartners(ctx context.Context, in *ListPartnersRequest, opts ...grpc.CallOption) (*ListPartnersResponse, error)
	IsConnected(ctx context.Context, in *IsConnectedRequest, opts ...grpc.CallOption) (*IsConnectedResponse, error)
}

type connectionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConnectionServiceClient(cc grpc.ClientConnInterface) ConnectionServiceClient {
	return &connectionServiceClient{cc}
}

func (c *connectionServiceClient) Propose(ctx context.Context, in *ProposeRequest, opts ...grpc.CallOption) (*ProposeResponse, error) {
	return invoke[ProposeResponse](ctx, c.cc, ConnectionService_Propose_FullMethodName, in, opts)
}

func (c *connectionServiceClient) ListIncoming(ctx context.Context, in *ListIncomingRequest, opts ...grpc.CallOption) (*ListIncomingResponse, error) {
	return invoke[ListIncomingResponse](ctx, c.cc, ConnectionService_ListIncoming_FullMethodName, in, opts)
}

func (c *connectionServiceClient) ListOutgoing(ctx context.Context, in *ListOutgoingRequest, opts ...grpc.CallOption) (*ListOutgoingResponse, error) {
	return invoke[ListOutgoingResponse](ctx, c.cc, ConnectionService_ListOutgoing_FullMethodName, in, opts)
}

func (c *connectionServiceClient) Accept(ctx context.Context, in *AcceptRequest, opts ...grpc.CallOption) (*AcceptResponse, error) {
	return invoke[AcceptResponse](ctx, c.cc, ConnectionService_Accept_FullMethodName, in, opts)
}

func (c *connectionServiceClient) Decline(ctx context.Context, in *DeclineRequest, opts ...grpc.CallOption) (*DeclineResponse, error) {
	return invoke[DeclineResponse](ctx, c.cc, ConnectionService_Decline_FullMethodName, in, opts)
}

func (c *connectionServiceClient) ListPartners(ctx context.Context, in *ListPartnersRequest, opts ...grpc.CallOption) (*ListPartnersResponse, error) {
	return invoke[ListPartnersResponse](ctx, c.cc, ConnectionService_ListPartners_FullMethodName, in, opts)
}

func (c *connectionServiceClient) IsConnected(ctx context.Context, in *IsConnectedRequest, opts ...grpc.CallOption) (*IsConnectedResponse, error) {
	return invoke[IsConnectedResponse](ctx, c.cc, ConnectionService_IsConnected_FullMethodName, in, opts)
}
