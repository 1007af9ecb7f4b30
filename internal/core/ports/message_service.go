package ports

import (
	"context"
	"io"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// PageInput carries the cursor parameters of a pagination query. Offset and
// Limit come straight from the query string; values of zero (or below) select
// the documented defaults.
type PageInput struct {
	UserID string
	Offset int64
	Limit  int
}

// Page is one page of messages plus the cursor for the next request.
type Page struct {
	Messages   []domain.Message
	NextOffset int64
}

// MessageService defines the use-case operations over the message log.
type MessageService interface {
	// UploadText stores a text message and notifies the owner's subscribers.
	UploadText(ctx context.Context, client domain.Client, text string) (int64, error)
	// UploadFile writes the attachment to storage first, then stores the
	// message row, then notifies subscribers.
	UploadFile(ctx context.Context, client domain.Client, displayName string, src io.Reader) (int64, error)
	// ListOlder pages backward from the offset ("scroll up").
	ListOlder(ctx context.Context, in PageInput) (*Page, error)
	// ListNewer pages forward from the offset ("poll for new").
	ListNewer(ctx context.Context, in PageInput) (*Page, error)
	// Delete removes a message owned by userID, releasing its attachment
	// directory before the row delete. domain.ErrMessageNotFound when the
	// message is absent or owned by someone else.
	Delete(ctx context.Context, userID string, messageID int64) error
}

// FileStore places uploaded attachments and releases them on delete.
type FileStore interface {
	// Save writes src under a fresh upload directory and returns the public
	// serving path (e.g. /files/<id>/<name>).
	Save(ctx context.Context, name string, src io.Reader) (string, error)
	// Remove releases the upload directory referenced by a public path.
	Remove(publicPath string) error
}
