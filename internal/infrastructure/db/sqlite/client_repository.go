package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

// ClientRepository persists device registrations.
type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (client_id, client_key, client_name, user_id) VALUES (?, ?, ?, ?)`,
		client.ID, client.Key, client.Name, client.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// FindByKey looks a client up by its standing key (unique index).
func (r *ClientRepository) FindByKey(ctx context.Context, key string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRowContext(ctx,
		`SELECT client_id, client_key, client_name, user_id FROM clients WHERE client_key = ?`,
		key,
	).Scan(&c.ID, &c.Key, &c.Name, &c.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, clientID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE client_id = ?`, clientID)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
