package ports

import (
	"context"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// MessageRepository defines persistence operations over the append-only
// message log. All reads and deletes are scoped to the owning user.
type MessageRepository interface {
	// InsertText appends a text-only row and returns the assigned message ID.
	InsertText(ctx context.Context, userID, clientID, text string, timestamp int64) (int64, error)
	// InsertFile appends a file row: text carries the display name, filePath
	// the public serving path.
	InsertFile(ctx context.Context, userID, clientID, displayName, filePath string, timestamp int64) (int64, error)
	// FindByID returns the message only when it exists and belongs to userID;
	// domain.ErrMessageNotFound otherwise.
	FindByID(ctx context.Context, userID string, messageID int64) (*domain.Message, error)
	// DeleteByID removes the row when it exists and belongs to userID and
	// reports whether a row was actually removed.
	DeleteByID(ctx context.Context, userID string, messageID int64) (bool, error)
	// ListOlder returns up to limit messages with ID strictly below beforeID,
	// newest first (timestamp descending, ID breaking ties).
	ListOlder(ctx context.Context, userID string, beforeID int64, limit int) ([]domain.Message, error)
	// ListNewer returns up to limit messages with ID strictly above afterID,
	// in ascending ID order.
	ListNewer(ctx context.Context, userID string, afterID int64, limit int) ([]domain.Message, error)
}
