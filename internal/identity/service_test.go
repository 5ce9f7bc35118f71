package identity

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu    sync.Mutex
	users []User
}

func (m *memUsers) CreateUser(_ context.Context, username string, hash []byte, createdAt int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return 0, ErrUsernameTaken
		}
	}
	id := int64(len(m.users) + 1)
	m.users = append(m.users, User{ID: id, Username: username, PasswordHash: hash, CreatedAt: createdAt})
	return id, nil
}

func (m *memUsers) UserByName(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) UserByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func newTestService() *Service {
	return NewService(&memUsers{}, bcrypt.MinCost, zap.NewNop())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Register(ctx, Registration{Username: "alice", Password: "correct-horse"})
	req.NoError(err)
	req.Equal(int64(1), u.ID)
	req.NotEqual("correct-horse", string(u.PasswordHash))

	got, err := svc.Authenticate(ctx, "alice", "correct-horse")
	req.NoError(err)
	req.Equal(u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong-password")
	req.ErrorIs(err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "correct-horse")
	req.ErrorIs(err, ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, Registration{Username: "bob", Password: "password1"})
	req.NoError(err)
	_, err = svc.Register(ctx, Registration{Username: "bob", Password: "password2"})
	req.ErrorIs(err, ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{"valid", Registration{"carol", "longenough"}, false},
		{"empty username", Registration{"", "longenough"}, true},
		{"one letter", Registration{"c", "longenough"}, true},
		{"space in name", Registration{"car ol", "longenough"}, true},
		{"short password", Registration{"carol", "short"}, true},
		{"password over bcrypt limit", Registration{"carol", strings.Repeat("a", 73)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService().Register(context.Background(), tt.reg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDirectory(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := newTestService()
	u, err := svc.Register(ctx, Registration{Username: "dave", Password: "password1"})
	req.NoError(err)

	id, ok, err := svc.ResolveUserID(ctx, "dave")
	req.NoError(err)
	req.True(ok)
	req.Equal(u.ID, id)

	_, ok, err = svc.ResolveUserID(ctx, "erin")
	req.NoError(err)
	req.False(ok)

	name, err := svc.DisplayName(ctx, u.ID)
	req.NoError(err)
	req.Equal("dave", name)

	_, err = svc.DisplayName(ctx, 99)
	req.ErrorIs(err, ErrUnknownUser)
}
