package main

import (
	"errors"
	"testing"

	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

func TestRPCErrorShowsKind(t *testing.T) {
	st, err := grpcstatus.New(codes.FailedPrecondition, "not connected").
		WithDetails(&errdetails.ErrorInfo{Reason: string(apperr.KindNotConnected), Domain: "pairchat"})
	require.NoError(t, err)

	require.EqualError(t, rpcError(st.Err()), "NOT_CONNECTED: not connected")
	require.EqualError(t, rpcError(grpcstatus.Error(codes.Unauthenticated, "missing token")), "Unauthenticated: missing token")

	plain := errors.New("dial failed")
	require.Equal(t, plain, rpcError(plain))
	require.NoError(t, rpcError(nil))
}

func TestDaemonTarget(t *testing.T) {
	t.Setenv("PAIRCHAT_HOME", t.TempDir())
	t.Cleanup(func() { viper.Set(listenFlag, "") })

	viper.Set(listenFlag, "tcp://127.0.0.1:7400")
	require.Equal(t, "passthrough:///127.0.0.1:7400", daemonTarget("main"))

	viper.Set(listenFlag, "/tmp/pc.sock")
	require.Equal(t, "unix:///tmp/pc.sock", daemonTarget("main"))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"register"}, {"login"}, {"logout"},
		{"propose"}, {"requests", "incoming"}, {"requests", "outgoing"},
		{"accept"}, {"decline"}, {"partners"}, {"connected"},
		{"send"}, {"history"}, {"last"}, {"unread"}, {"watch"},
		{"status"}, {"config", "init"}, {"config", "show"}, {"config", "default-profile"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		require.Equal(t, path[len(path)-1], cmd.Name())
	}
}
