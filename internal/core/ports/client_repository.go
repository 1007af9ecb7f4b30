package ports

import (
	"context"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// ClientRepository defines persistence operations for device records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	// FindByKey looks a client up by its standing key. Returns
	// domain.ErrClientNotFound when no record matches.
	FindByKey(ctx context.Context, key string) (*domain.Client, error)
	// Delete removes the client and reports whether a row was removed.
	Delete(ctx context.Context, clientID string) (bool, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// HasAdmin reports whether a bootstrap administrator (role 0) exists.
	HasAdmin(ctx context.Context) (bool, error)
}
