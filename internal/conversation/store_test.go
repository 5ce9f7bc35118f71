package conversation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matheus3301/pairchat/internal/apperr"
	"github.com/matheus3301/pairchat/internal/bus"
	"github.com/matheus3301/pairchat/internal/conversation"
	"github.com/matheus3301/pairchat/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	alice int64 = 1
	bob   int64 = 2
)

type fixture struct {
	gate  *mocks.MockGate
	repo  *mocks.MockRepository
	bus   *bus.Bus
	store *conversation.Store
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		gate: mocks.NewMockGate(ctrl),
		repo: mocks.NewMockRepository(ctrl),
		bus:  bus.New(),
	}
	f.store = conversation.NewStore(f.repo, f.gate, f.bus, zap.NewNop())
	return f
}

func TestAppendConnected(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	events, unsub := f.bus.Subscribe("message.", 1)
	defer unsub()

	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(true, nil)
	f.repo.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *conversation.Message) error {
			m.ID = 7
			return nil
		})

	m, err := f.store.Append(ctx, alice, bob, "hi bob")
	req.NoError(err)
	req.Equal(int64(7), m.ID)
	req.Equal("hi bob", m.Text)
	req.Equal(alice, m.SenderID)
	req.Equal(bob, m.ReceiverID)
	req.NotZero(m.Timestamp)

	evt := <-events
	req.Equal(bus.KindMessageAppended, evt.Kind)
	req.Equal(int64(7), evt.Payload.(bus.MessageAppended).MessageID)
}

func TestAppendNotConnected(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(false, nil)
	f.repo.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Times(0)

	m, err := f.store.Append(context.Background(), alice, bob, "hello?")
	require.ErrorIs(t, err, apperr.ErrNotConnected)
	require.Nil(t, m)
}

func TestAppendBlankIsNoop(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.repo.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Times(0)

	for _, text := range []string{"", "   ", "\n\t"} {
		m, err := f.store.Append(context.Background(), alice, bob, text)
		require.NoError(t, err)
		require.Nil(t, m)
	}
	require.Zero(t, f.bus.Subscribers())
}

func TestAppendStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(true, nil)
	cause := errors.New("disk full")
	f.repo.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(cause)

	_, err := f.store.Append(context.Background(), alice, bob, "hi")
	require.ErrorIs(t, err, apperr.ErrStorageFailure)
	require.ErrorIs(t, err, cause)
}

func TestAppendGateFailure(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(false, errors.New("locked"))

	_, err := f.store.Append(context.Background(), alice, bob, "hi")
	require.Equal(t, apperr.KindStorageFailure, apperr.KindOf(err))
}

func TestHistoryNotConnectedIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(false, nil)
	f.repo.EXPECT().MessagesBetween(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	msgs, err := f.store.History(context.Background(), alice, bob)
	require.NoError(t, err)
	require.NotNil(t, msgs)
	require.Empty(t, msgs)
}

func TestHistoryConnected(t *testing.T) {
	f := newFixture(t)
	want := []conversation.Message{
		{ID: 1, SenderID: alice, ReceiverID: bob, Text: "hi", Timestamp: 10},
		{ID: 2, SenderID: bob, ReceiverID: alice, Text: "hey", Timestamp: 10},
	}
	f.gate.EXPECT().IsConnected(gomock.Any(), alice, bob).Return(true, nil)
	f.repo.EXPECT().MessagesBetween(gomock.Any(), alice, bob).Return(want, nil)

	msgs, err := f.store.History(context.Background(), alice, bob)
	require.NoError(t, err)
	require.Equal(t, want, msgs)
}

func TestLastMessageBypassesGate(t *testing.T) {
	f := newFixture(t)
	f.gate.EXPECT().IsConnected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	last := &conversation.Message{ID: 3, SenderID: bob, ReceiverID: alice, Text: "bye", Timestamp: 30}
	f.repo.EXPECT().LatestBetween(gomock.Any(), alice, bob).Return(last, nil)

	m, err := f.store.LastMessage(context.Background(), alice, bob)
	require.NoError(t, err)
	require.Equal(t, last, m)
}

func TestUnreadCountCountsPartnerMessages(t *testing.T) {
	f := newFixture(t)
	// Messages authored by bob and received by alice.
	f.repo.EXPECT().CountFrom(gomock.Any(), bob, alice).Return(int64(4), nil)

	n, err := f.store.UnreadCount(context.Background(), alice, bob)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
}
