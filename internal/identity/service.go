package identity

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRE.MatchString(fl.Field().String())
	})
	return v
}

// Registration is the input to Register.
type Registration struct {
	Username string `validate:"required,min=2,max=32,username"`
	Password string `validate:"required,min=8,max=72"`
}

// Service implements registration, authentication and Directory on top of
// a UserStore.
type Service struct {
	users  UserStore
	cost   int
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service hashing passwords with the given bcrypt cost.
// A cost of zero means bcrypt.DefaultCost.
func NewService(users UserStore, cost int, logger *zap.Logger) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost, logger: logger, now: time.Now}
}

// Register validates and stores a new account.
func (s *Service) Register(ctx context.Context, reg Registration) (*User, error) {
	if err := validate.Struct(reg); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	createdAt := s.now().UnixMilli()
	id, err := s.users.CreateUser(ctx, reg.Username, hash, createdAt)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Int64("user_id", id), zap.String("username", reg.Username))
	return &User{ID: id, Username: reg.Username, PasswordHash: hash, CreatedAt: createdAt}, nil
}

// Authenticate returns the user when the password matches, and
// ErrInvalidCredentials for an unknown name or a wrong password alike.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.users.UserByName(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResolveUserID implements Directory.
func (s *Service) ResolveUserID(ctx context.Context, username string) (int64, bool, error) {
	u, err := s.users.UserByName(ctx, username)
	if err != nil {
		return 0, false, err
	}
	if u == nil {
		return 0, false, nil
	}
	return u.ID, true, nil
}

// DisplayName implements Directory.
func (s *Service) DisplayName(ctx context.Context, id int64) (string, error) {
	u, err := s.users.UserByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", fmt.Errorf("%w: %d", ErrUnknownUser, id)
	}
	return u.Username, nil
}
