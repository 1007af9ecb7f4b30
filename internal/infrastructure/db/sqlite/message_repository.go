package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// MessageRepository persists the append-only message log.
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// InsertText appends a text-only row and returns the assigned message ID.
func (r *MessageRepository) InsertText(ctx context.Context, userID, clientID, text string, timestamp int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (time_stamp, message_text, client_id, user_id) VALUES (?, ?, ?, ?)`,
		timestamp, text, clientID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert text message: %w", err)
	}
	return res.LastInsertId()
}

// InsertFile appends a file row with the display name as text and the public
// serving path.
func (r *MessageRepository) InsertFile(ctx context.Context, userID, clientID, displayName, filePath string, timestamp int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (time_stamp, message_text, file_path, client_id, user_id) VALUES (?, ?, ?, ?, ?)`,
		timestamp, displayName, filePath, clientID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file message: %w", err)
	}
	return res.LastInsertId()
}

// FindByID returns the message only when it belongs to userID.
func (r *MessageRepository) FindByID(ctx context.Context, userID string, messageID int64) (*domain.Message, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT message_id, time_stamp, message_text, file_path, client_id, user_id
		 FROM messages WHERE message_id = ? AND user_id = ?`,
		messageID, userID,
	)
	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return msg, nil
}

// DeleteByID removes the row when owned by userID, reporting whether a row
// was removed.
func (r *MessageRepository) DeleteByID(ctx context.Context, userID string, messageID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE message_id = ? AND user_id = ?`,
		messageID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListOlder returns up to limit rows with ID strictly below beforeID, newest
// first. The ID ordering breaks timestamp ties deterministically.
func (r *MessageRepository) ListOlder(ctx context.Context, userID string, beforeID int64, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_id, time_stamp, message_text, file_path, client_id, user_id
		 FROM messages WHERE user_id = ? AND message_id < ?
		 ORDER BY time_stamp DESC, message_id DESC LIMIT ?`,
		userID, beforeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list older messages: %w", err)
	}
	defer rows.Close()
	return collectMessages(rows)
}

// ListNewer returns up to limit rows with ID strictly above afterID, in
// ascending ID order.
func (r *MessageRepository) ListNewer(ctx context.Context, userID string, afterID int64, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_id, time_stamp, message_text, file_path, client_id, user_id
		 FROM messages WHERE user_id = ? AND message_id > ?
		 ORDER BY message_id ASC LIMIT ?`,
		userID, afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list newer messages: %w", err)
	}
	defer rows.Close()
	return collectMessages(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var text, filePath sql.NullString
	if err := row.Scan(&m.ID, &m.Timestamp, &text, &filePath, &m.ClientID, &m.UserID); err != nil {
		return nil, err
	}
	m.Text = text.String
	m.FilePath = filePath.String
	return &m, nil
}

func collectMessages(rows *sql.Rows) ([]domain.Message, error) {
	msgs := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
