package wire

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ConversationService_Send_FullMethodName        = "/pairchat.v1.ConversationService/Send"
	ConversationService_History_FullMethodName     = "/pairchat.v1.ConversationService/History"
	ConversationService_LastMessage_FullMethodName = "/pairchat.v1.ConversationService/LastMessage"
	ConversationService_UnreadCount_FullMethodName = "/pairchat.v1.ConversationService/UnreadCount"
	ConversationService_WatchEvents_FullMethodName = "/pairchat.v1.ConversationService/WatchEvents"
)

type Message struct {
	ID              int64  `json:"id"`
	SenderID        int64  `json:"sender_id"`
	ReceiverID      int64  `json:"receiver_id"`
	Text            string `json:"text"`
	TimestampUnixMs int64  `json:"timestamp_unix_ms"`
}

type SendRequest struct {
	PartnerUsername string `json:"partner_username"`
	Text            string `json:"text"`
}

// SendResponse carries the stored message, or Noop when blank text was
// ignored.
type SendResponse struct {
	Message *Message `json:"message,omitempty"`
	Noop    bool     `json:"noop"`
}

type HistoryRequest struct {
	PartnerUsername string `json:"partner_username"`
}

type HistoryResponse struct {
	Messages []Message `json:"messages"`
}

type LastMessageRequest struct {
	PartnerUsername string `json:"partner_username"`
}

type LastMessageResponse struct {
	Message *Message `json:"message,omitempty"`
}

type UnreadCountRequest struct {
	PartnerUsername string `json:"partner_username"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type WatchEventsRequest struct{}

// Event is a bus event relevant to the watching user. Exactly one of
// Connection and Message is set, depending on Kind.
type Event struct {
	Kind            string           `json:"kind"`
	TimestampUnixMs int64            `json:"timestamp_unix_ms"`
	Connection      *ConnectionEvent `json:"connection,omitempty"`
	Message         *MessageEvent    `json:"message,omitempty"`
}

type ConnectionEvent struct {
	RequestID  string `json:"request_id"`
	ProposerID int64  `json:"proposer_id"`
	TargetID   int64  `json:"target_id"`
}

type MessageEvent struct {
	MessageID  int64 `json:"message_id"`
	SenderID   int64 `json:"sender_id"`
	ReceiverID int64 `json:"receiver_id"`
}

// ConversationServiceServer is the server API for ConversationService.
type ConversationServiceServer interface {
	Send(context.Context, *SendRequest) (*SendResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
	LastMessage(context.Context, *LastMessageRequest) (*LastMessageResponse, error)
	UnreadCount(context.Context, *UnreadCountRequest) (*UnreadCountResponse, error)
	WatchEvents(*WatchEventsRequest, grpc.ServerStreamingServer[Event]) error
}

var ConversationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pairchat.v1.ConversationService",
	HandlerType: (*ConversationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Send", Handler: unary(ConversationService_Send_FullMethodName, ConversationServiceServer.Send)},
		{MethodName: "History", Handler: unary(ConversationService_History_FullMethodName, ConversationServiceServer.History)},
		{MethodName: "LastMessage", Handler: unary(ConversationService_LastMessage_FullMethodName, ConversationServiceServer.LastMessage)},
		{MethodName: "UnreadCount", Handler: unary(ConversationService_UnreadCount_FullMethodName, ConversationServiceServer.UnreadCount)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEvents",
			Handler:       _ConversationService_WatchEvents_Handler,
			ServerStreams: true,
		},
	},
}

func _ConversationService_WatchEvents_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchEventsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ConversationServiceServer).WatchEvents(m, &grpc.GenericServerStream[WatchEventsRequest, Event]{ServerStream: stream})
}

func RegisterConversationServiceServer(s grpc.ServiceRegistrar, srv ConversationServiceServer) {
	s.RegisterService(&ConversationService_ServiceDesc, srv)
}

// ConversationServiceClient is the client API for ConversationService.
type ConversationServiceClient interface {
	Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*SendResponse, error)
	History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error)
	LastMessage(ctx context.Context, in *LastMessageRequest, opts ...grpc.CallOption) (*LastMessageResponse, error)
	UnreadCount(ctx context.Context, in *UnreadCountRequest, opts ...grpc.CallOption) (*UnreadCountResponse, error)
	WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error)
}

type conversationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConversationServiceClient(cc grpc.ClientConnInterface) ConversationServiceClient {
	return &conversationServiceClient{cc}
}

func (c *conversationServiceClient) Send(ctx context.Context, in *SendRequest, opts ...grpc.CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c.cc, ConversationService_Send_FullMethodName, in, opts)
}

func (c *conversationServiceClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, ConversationService_History_FullMethodName, in, opts)
}

func (c *conversationServiceClient) LastMessage(ctx context.Context, in *LastMessageRequest, opts ...grpc.CallOption) (*LastMessageResponse, error) {
	return invoke[LastMessageResponse](ctx, c.cc, ConversationService_LastMessage_FullMethodName, in, opts)
}

func (c *conversationServiceClient) UnreadCount(ctx context.Context, in *UnreadCountRequest, opts ...grpc.CallOption) (*UnreadCountResponse, error) {
	return invoke[UnreadCountResponse](ctx, c.cc, ConversationService_UnreadCount_FullMethodName, in, opts)
}

func (c *conversationServiceClient) WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Event], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ConversationService_ServiceDesc.Streams[0], ConversationService_WatchEvents_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchEventsRequest, Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
