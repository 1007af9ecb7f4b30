package ports

import (
	"context"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// AuthService authenticates devices and users and manages client records.
type AuthService interface {
	// ResolveClient maps a presented client key to its client record.
	// domain.ErrBadAuthentication when the key is absent or unknown.
	ResolveClient(ctx context.Context, key string) (*domain.Client, error)
	// VerifyUser checks username/password against the stored bcrypt hash.
	// domain.ErrBadCredentials on any mismatch.
	VerifyUser(ctx context.Context, username, password string) (*domain.User, error)
	// CreateClient registers a new device for the user after verifying their
	// credentials. The returned record includes the freshly minted key.
	CreateClient(ctx context.Context, username, password, clientName string) (*domain.Client, error)
	// DeleteClient removes a device record after verifying user credentials.
	DeleteClient(ctx context.Context, username, password, clientID string) error
	// NeedsBootstrap reports whether no administrator account exists yet.
	NeedsBootstrap(ctx context.Context) (bool, error)
	// EnsureAdmin creates the bootstrap administrator unless one already
	// exists; reports whether an account was created.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}
