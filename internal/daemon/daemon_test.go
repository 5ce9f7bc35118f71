package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/pairchat/internal/api"
	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/auth"
	"github.com/matheus3301/pairchat/internal/bus"
	"github.com/matheus3301/pairchat/internal/client"
	"github.com/matheus3301/pairchat/internal/config"
	"github.com/matheus3301/pairchat/internal/connection"
	"github.com/matheus3301/pairchat/internal/conversation"
	"github.com/matheus3301/pairchat/internal/identity"
	"github.com/matheus3301/pairchat/internal/profile"
	"github.com/matheus3301/pairchat/internal/status"
	"github.com/matheus3301/pairchat/internal/store"
	"github.com/matheus3301/pairchat/internal/wire"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

type harness struct {
	socketPath string
	machine    *status.Machine
	bus        *bus.Bus
}

// startServer runs the full service stack on a SQLite store behind a Unix
// socket, without fx.
func startServer(t *testing.T) *harness {
	t.Helper()
	// Use a short path to avoid the 104-char Unix socket limit on macOS.
	tmpDir, err := os.MkdirTemp("/tmp", "pairchat-test-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := store.Open(filepath.Join(tmpDir, "pairchat.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := zap.NewNop()
	b := bus.New()
	machine := status.NewMachine(b)
	ids := identity.NewService(db, bcrypt.MinCost, logger)
	reg := connection.NewRegistry(db, ids, b, logger)
	convo := conversation.NewStore(db, reg, b, logger)
	issuer := auth.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	p := Params{ProfileName: "test", SocketPath: filepath.Join(tmpDir, "d.sock")}
	srv, err := NewServer(p, config.Default(), logger,
		auth.NewInterceptor(issuer, nil, logger, wire.PublicMethods...),
		NewReporter("", "test", logger),
		Services{
			Account:      api.NewAccountService(ids, issuer, logger),
			Connection:   api.NewConnectionService(reg, ids),
			Conversation: api.NewConversationService(convo, ids, b, logger),
			Daemon:       api.NewDaemonService("test", machine, db, logger),
		})
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = srv.Start() }()
	t.Cleanup(func() { srv.Stop(context.Background()) })

	return &harness{socketPath: p.SocketPath, machine: machine, bus: b}
}

func (h *harness) dial(t *testing.T, token string) *client.Client {
	t.Helper()
	c, err := client.New("unix://"+h.socketPath, token)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// signup registers and logs in, returning a client bearing the token.
func (h *harness) signup(t *testing.T, ctx context.Context, name string) *client.Client {
	t.Helper()
	anon := h.dial(t, "")
	if _, err := anon.Account.Register(ctx, &wire.RegisterRequest{Username: name, Password: "password1"}); err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	resp, err := anon.Account.Login(ctx, &wire.LoginRequest{Username: name, Password: "password1"})
	if err != nil {
		t.Fatalf("login %s: %v", name, err)
	}
	return h.dial(t, resp.Token)
}

// waitSubscribed blocks until a WatchEvents stream is attached to the bus.
func (h *harness) waitSubscribed(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.bus.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for watcher")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if got := api.KindFromError(err); got != kind {
		t.Fatalf("error kind = %s (%v), want %s", got, err, kind)
	}
}

func TestConnectAndChat(t *testing.T) {
	h := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alice := h.signup(t, ctx, "alice")
	bob := h.signup(t, ctx, "bob")

	watch, err := bob.Conversation.WatchEvents(ctx, &wire.WatchEventsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	h.waitSubscribed(t)

	prop, err := alice.Connection.Propose(ctx, &wire.ProposeRequest{TargetUsername: "bob"})
	if err != nil {
		t.Fatalf("Propose error = %v", err)
	}

	evt, err := watch.Recv()
	if err != nil {
		t.Fatal(err)
	}
	if evt.Kind != bus.KindConnectionProposed || evt.Connection.RequestID != prop.RequestID {
		t.Errorf("first event = %+v", evt)
	}

	_, err = alice.Conversation.Send(ctx, &wire.SendRequest{PartnerUsername: "bob", Text: "early"})
	wantKind(t, err, apperr.KindNotConnected)
	if !errors.Is(api.AsAppError(err), apperr.ErrNotConnected) {
		t.Errorf("AsAppError lost the sentinel: %v", err)
	}

	in, err := bob.Connection.ListIncoming(ctx, &wire.ListIncomingRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Requests) != 1 || in.Requests[0].ProposerName != "alice" {
		t.Fatalf("ListIncoming = %+v", in.Requests)
	}

	_, err = alice.Connection.Accept(ctx, &wire.AcceptRequest{RequestID: prop.RequestID})
	wantKind(t, err, apperr.KindNotAuthorizedOrNotFound)

	if _, err := bob.Connection.Accept(ctx, &wire.AcceptRequest{RequestID: prop.RequestID}); err != nil {
		t.Fatalf("Accept error = %v", err)
	}

	sent, err := alice.Conversation.Send(ctx, &wire.SendRequest{PartnerUsername: "bob", Text: "hi bob"})
	if err != nil {
		t.Fatalf("Send error = %v", err)
	}
	if sent.Noop || sent.Message == nil || sent.Message.Text != "hi bob" {
		t.Fatalf("Send = %+v", sent)
	}
	blank, err := alice.Conversation.Send(ctx, &wire.SendRequest{PartnerUsername: "bob", Text: "  "})
	if err != nil || !blank.Noop {
		t.Fatalf("blank Send = %+v, %v", blank, err)
	}

	// accepted, then message.appended
	for _, want := range []string{bus.KindConnectionAccepted, bus.KindMessageAppended} {
		evt, err := watch.Recv()
		if err != nil {
			t.Fatal(err)
		}
		if evt.Kind != want {
			t.Errorf("event kind = %s, want %s", evt.Kind, want)
		}
	}

	hist, err := bob.Conversation.History(ctx, &wire.HistoryRequest{PartnerUsername: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hist.Messages) != 1 || hist.Messages[0].Text != "hi bob" {
		t.Errorf("History = %+v", hist.Messages)
	}

	unread, err := bob.Conversation.UnreadCount(ctx, &wire.UnreadCountRequest{PartnerUsername: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if unread.Count != 1 {
		t.Errorf("UnreadCount = %d, want 1", unread.Count)
	}

	last, err := alice.Conversation.LastMessage(ctx, &wire.LastMessageRequest{PartnerUsername: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if last.Message == nil || last.Message.ID != sent.Message.ID {
		t.Errorf("LastMessage = %+v", last.Message)
	}

	partners, err := alice.Connection.ListPartners(ctx, &wire.ListPartnersRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(partners.Partners) != 1 || partners.Partners[0].Username != "bob" {
		t.Errorf("ListPartners = %+v", partners.Partners)
	}

	conn, err := bob.Connection.IsConnected(ctx, &wire.IsConnectedRequest{PartnerUsername: "alice"})
	if err != nil || !conn.Connected {
		t.Errorf("IsConnected = %+v, %v", conn, err)
	}

	_, err = alice.Connection.Propose(ctx, &wire.ProposeRequest{TargetUsername: "bob"})
	wantKind(t, err, apperr.KindAlreadyConnected)
	_, err = alice.Connection.Propose(ctx, &wire.ProposeRequest{TargetUsername: "alice"})
	wantKind(t, err, apperr.KindSelfTarget)
	_, err = alice.Connection.Propose(ctx, &wire.ProposeRequest{TargetUsername: "nobody"})
	wantKind(t, err, apperr.KindUserNotFound)
}

func TestAuthRequired(t *testing.T) {
	h := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	anon := h.dial(t, "")
	_, err := anon.Connection.ListPartners(ctx, &wire.ListPartnersRequest{})
	if grpcstatus.Code(err) != codes.Unauthenticated {
		t.Errorf("ListPartners without token: code = %v, want Unauthenticated", grpcstatus.Code(err))
	}

	forged := h.dial(t, "not.a.token")
	_, err = forged.Connection.ListPartners(ctx, &wire.ListPartnersRequest{})
	if grpcstatus.Code(err) != codes.Unauthenticated {
		t.Errorf("ListPartners with bad token: code = %v, want Unauthenticated", grpcstatus.Code(err))
	}

	_, err = anon.Account.Login(ctx, &wire.LoginRequest{Username: "ghost", Password: "password1"})
	if grpcstatus.Code(err) != codes.Unauthenticated {
		t.Errorf("Login unknown user: code = %v", grpcstatus.Code(err))
	}

	if _, err := anon.Account.Register(ctx, &wire.RegisterRequest{Username: "dup", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	_, err = anon.Account.Register(ctx, &wire.RegisterRequest{Username: "dup", Password: "password1"})
	if grpcstatus.Code(err) != codes.AlreadyExists {
		t.Errorf("duplicate Register: code = %v, want AlreadyExists", grpcstatus.Code(err))
	}
	_, err = anon.Account.Register(ctx, &wire.RegisterRequest{Username: "x y", Password: "password1"})
	if grpcstatus.Code(err) != codes.InvalidArgument {
		t.Errorf("invalid Register: code = %v, want InvalidArgument", grpcstatus.Code(err))
	}
}

func TestStatusIsPublic(t *testing.T) {
	h := startServer(t)
	_ = h.machine.Transition(status.Migrating)
	_ = h.machine.Transition(status.Ready)

	resp, err := h.dial(t, "").Daemon.Status(context.Background(), &wire.StatusRequest{})
	if err != nil {
		t.Fatalf("Status error = %v", err)
	}
	if resp.Profile != "test" {
		t.Errorf("profile = %q, want test", resp.Profile)
	}
	if resp.State != string(status.Ready) {
		t.Errorf("state = %q, want READY", resp.State)
	}
}

// TestModuleLifecycle boots the real fx module against a temporary
// PAIRCHAT_HOME and checks it reaches READY and releases the lock.
func TestModuleLifecycle(t *testing.T) {
	home, err := os.MkdirTemp("/tmp", "pc-*")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(home) }()
	t.Setenv(profile.BaseDirEnv, home)

	cfg := config.Default()
	cfg.Daemon.LogLevel = "error"

	var machine *status.Machine
	app := fx.New(
		Module(Params{ProfileName: "test", Config: cfg}),
		fx.Populate(&machine),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatal(err)
	}

	c, err := client.New(client.Target(profile.SocketPath("test")), "")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.Daemon.Status(ctx, &wire.StatusRequest{})
	_ = c.Close()
	if err != nil {
		t.Fatalf("Status error = %v", err)
	}
	if resp.State != string(status.Ready) {
		t.Errorf("state = %q, want READY", resp.State)
	}

	if err := app.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if machine.Current() != status.Stopped {
		t.Errorf("state after stop = %s, want STOPPED", machine.Current())
	}
	if _, err := os.Stat(profile.SocketPath("test")); !os.IsNotExist(err) {
		t.Errorf("socket not removed: %v", err)
	}
	if _, err := os.Stat(profile.SigningKeyPath("test")); err != nil {
		t.Errorf("signing key not created: %v", err)
	}
}
