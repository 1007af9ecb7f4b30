package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickmsg/messaging-system/internal/core/domain"
	"github.com/quickmsg/messaging-system/internal/core/ports"
)

const (
	// DefaultPageLimit applies when the caller sends no limit or a value <= 0.
	DefaultPageLimit = 10
	// MaxPageLimit caps the page size regardless of the requested value.
	MaxPageLimit = 100
	// MaxOffset is the "from the newest" sentinel for backward pagination.
	MaxOffset = math.MaxInt64
)

type MessageService struct {
	repo     ports.MessageRepository
	files    ports.FileStore
	registry ports.SubscriptionRegistry
	logger   zerolog.Logger
	now      func() time.Time
}

func NewMessageService(repo ports.MessageRepository, files ports.FileStore, registry ports.SubscriptionRegistry, logger zerolog.Logger) *MessageService {
	return &MessageService{
		repo:     repo,
		files:    files,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// UploadText appends a text message and fans the new row out to the owning
// user's subscribers.
func (s *MessageService) UploadText(ctx context.Context, client domain.Client, text string) (int64, error) {
	ts := s.now().UnixMilli()
	id, err := s.repo.InsertText(ctx, client.UserID, client.ID, text, ts)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", client.ID).Msg("failed to insert text message")
		return 0, err
	}

	s.registry.Notify(client.UserID, domain.Notification{
		MessageID: id,
		Timestamp: ts,
		Text:      text,
	})

	s.logger.Info().Int64("message_id", id).Str("user_id", client.UserID).Msg("text message stored")
	return id, nil
}

// UploadFile runs the sequential upload pipeline: write the attachment to
// storage, then insert the row, then notify. A crash between the two steps
// can leave an orphaned file; there is no compensating rollback.
func (s *MessageService) UploadFile(ctx context.Context, client domain.Client, displayName string, src io.Reader) (int64, error) {
	publicPath, err := s.files.Save(ctx, displayName, src)
	if err != nil {
		s.logger.Error().Err(err).Str("file_name", displayName).Msg("failed to store attachment")
		return 0, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	ts := s.now().UnixMilli()
	id, err := s.repo.InsertFile(ctx, client.UserID, client.ID, displayName, publicPath, ts)
	if err != nil {
		s.logger.Error().Err(err).Str("file_path", publicPath).Msg("failed to insert file message")
		return 0, err
	}

	s.registry.Notify(client.UserID, domain.Notification{
		MessageID: id,
		Timestamp: ts,
		Text:      displayName,
		FilePath:  publicPath,
	})

	s.logger.Info().Int64("message_id", id).Str("file_path", publicPath).Str("user_id", client.UserID).Msg("file message stored")
	return id, nil
}

// ListOlder pages backward from the offset. An offset <= 0 means "from the
// newest". The returned cursor is the oldest returned ID; on an empty page it
// falls back to the caller's offset, or 1 when none was given.
func (s *MessageService) ListOlder(ctx context.Context, in ports.PageInput) (*ports.Page, error) {
	limit := clampLimit(in.Limit)
	before := in.Offset
	if before <= 0 {
		before = int64(MaxOffset)
	}

	msgs, err := s.repo.ListOlder(ctx, in.UserID, before, limit)
	if err != nil {
		return nil, err
	}

	next := int64(1)
	if len(msgs) > 0 {
		next = msgs[len(msgs)-1].ID
	} else if in.Offset > 0 {
		next = in.Offset
	}
	return &ports.Page{Messages: msgs, NextOffset: next}, nil
}

// ListNewer pages forward from the offset (default 0). The returned cursor is
// the newest returned ID; on an empty page it falls back to the caller's
// offset, or the max sentinel when none was given.
func (s *MessageService) ListNewer(ctx context.Context, in ports.PageInput) (*ports.Page, error) {
	limit := clampLimit(in.Limit)
	after := in.Offset
	if after < 0 {
		after = 0
	}

	msgs, err := s.repo.ListNewer(ctx, in.UserID, after, limit)
	if err != nil {
		return nil, err
	}

	next := int64(MaxOffset)
	if len(msgs) > 0 {
		next = msgs[len(msgs)-1].ID
	} else if in.Offset > 0 {
		next = in.Offset
	}
	return &ports.Page{Messages: msgs, NextOffset: next}, nil
}

// Delete removes a message owned by userID. When the message references an
// attachment, the backing directory is removed before the row delete; a
// missing or foreign row fails with ErrMessageNotFound and touches nothing.
func (s *MessageService) Delete(ctx context.Context, userID string, messageID int64) error {
	msg, err := s.repo.FindByID(ctx, userID, messageID)
	if err != nil {
		return err
	}

	if msg.FilePath != "" {
		if err := s.files.Remove(msg.FilePath); err != nil {
			s.logger.Error().Err(err).Str("file_path", msg.FilePath).Msg("failed to remove attachment")
			return fmt.Errorf("%w: %v", domain.ErrStorage, err)
		}
	}

	ok, err := s.repo.DeleteByID(ctx, userID, messageID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrMessageNotFound
	}

	s.logger.Info().Int64("message_id", messageID).Str("user_id", userID).Msg("message deleted")
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
