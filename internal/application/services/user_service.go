package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users    application.UserRepository
	sessions application.SessionIssuer
	logger   *slog.Logger
	cost     int
}

func NewUserService(users application.UserRepository, sessions application.SessionIssuer, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost in tests.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if password == "" {
		return nil, domain.NewValidationError("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password is too long")
		}
		return nil, application.NewInternalError(err)
	}

	user, err := domain.NewUser(uuid.NewString(), email, string(hash), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login returns a signed session token. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", time.Time{}, err
	}
	if user == nil {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", "email", user.Email)
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(user.Email)
	if err != nil {
		return "", time.Time{}, application.NewInternalError(err)
	}
	return token, expiresAt, nil
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
