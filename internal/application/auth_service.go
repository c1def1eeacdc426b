package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/listora/listings-api/internal/domain/entity"
	"github.com/listora/listings-api/internal/domain/repository"
	"github.com/listora/listings-api/pkg/events"
	"github.com/listora/listings-api/pkg/helpers"
)

// AuthService covers registration, credential verification and token
// issuance. Inputs arrive already validated and normalized.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger, Pub: pub}
}

// Register hashes the password and persists the user. The raw password is
// never logged or stored. repository.ErrEmailTaken passes through for the
// handler to map to 409.
func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.UserRegistered, u.ID, 0))
	return u, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password collapse into the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) publish(ctx context.Context, ev events.Event) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", ev.Type).Warn("event publish failed")
	}
}
