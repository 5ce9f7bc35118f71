// Package client dials a pairchat daemon and exposes typed service
// clients.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheus3301/pairchat/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps the gRPC connection to the daemon.
type Client struct {
	conn         *grpc.ClientConn
	Account      wire.AccountServiceClient
	Connection   wire.ConnectionServiceClient
	Conversation wire.ConversationServiceClient
	Daemon       wire.DaemonServiceClient
}

// Target turns a listen setting into a dial target: "tcp://host:port"
// dials TCP, anything else is a Unix socket path.
func Target(listen string) string {
	if addr, ok := strings.CutPrefix(listen, "tcp://"); ok {
		return "passthrough:///" + addr
	}
	return "unix://" + listen
}

// New dials target and returns typed service clients. A non-empty token is
// sent as a bearer credential on every call.
func New(target, token string) (*Client, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(wire.CodecName)),
	}
	if token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearer(token)))
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	return &Client{
		conn:         conn,
		Account:      wire.NewAccountServiceClient(conn),
		Connection:   wire.NewConnectionServiceClient(conn),
		Conversation: wire.NewConversationServiceClient(conn),
		Daemon:       wire.NewDaemonServiceClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

type bearer string

func (b bearer) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + string(b)}, nil
}

// The daemon listens on a local socket or a trusted address.
func (bearer) RequireTransportSecurity() bool {
	return false
}
