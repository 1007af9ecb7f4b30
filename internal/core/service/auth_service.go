package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickmsg/messaging-system/internal/core/domain"
	"github.com/quickmsg/messaging-system/internal/core/ports"
)

// AuthService resolves client keys, verifies user credentials and manages
// device registrations.
type AuthService struct {
	users   ports.UserRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, clients ports.ClientRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, clients: clients, logger: logger}
}

// ResolveClient maps a presented client key to its owning client record.
// The stored key is re-compared in constant time after the indexed lookup to
// avoid a timing side channel on the secret.
func (s *AuthService) ResolveClient(ctx context.Context, key string) (*domain.Client, error) {
	if key == "" {
		return nil, domain.ErrBadAuthentication
	}

	client, err := s.clients.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrBadAuthentication
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(client.Key), []byte(key)) != 1 {
		return nil, domain.ErrBadAuthentication
	}
	return client, nil
}

// VerifyUser checks a username/password pair against the stored bcrypt hash.
func (s *AuthService) VerifyUser(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrBadCredentials
	}
	return user, nil
}

// CreateClient registers a new device under the verified user's account with
// freshly minted client ID and key.
func (s *AuthService) CreateClient(ctx context.Context, username, password, clientName string) (*domain.Client, error) {
	user, err := s.VerifyUser(ctx, username, password)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:     uuid.NewString(),
		Key:    uuid.NewString(),
		Name:   clientName,
		UserID: user.ID,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("user_id", user.ID).Msg("client registered")
	return client, nil
}

// DeleteClient removes a device record after verifying user credentials.
func (s *AuthService) DeleteClient(ctx context.Context, username, password, clientID string) error {
	if _, err := s.VerifyUser(ctx, username, password); err != nil {
		return err
	}

	ok, err := s.clients.Delete(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrClientNotFound
	}

	s.logger.Info().Str("client_id", clientID).Msg("client deleted")
	return nil
}

// NeedsBootstrap reports whether the one-time admin creation flow should run.
func (s *AuthService) NeedsBootstrap(ctx context.Context) (bool, error) {
	has, err := s.users.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	return !has, nil
}

// EnsureAdmin creates the bootstrap administrator unless one already exists.
// The existing-admin check guards against running the flow twice.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	has, err := s.users.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	if has {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}

	s.logger.Info().Str("username", username).Msg("admin user created")
	return true, nil
}
