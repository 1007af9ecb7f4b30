package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickmsg/messaging-system/internal/core/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
	return db
}

func insertText(t *testing.T, repo *MessageRepository, userID, text string, ts int64) int64 {
	t.Helper()
	id, err := repo.InsertText(context.Background(), userID, "c1", text, ts)
	require.NoError(t, err)
	return id
}

func TestMessageRepository_InsertAssignsIncreasingIDs(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	first := insertText(t, repo, "u1", "one", 100)
	second := insertText(t, repo, "u1", "two", 200)
	require.Greater(t, second, first)

	// Deleting the newest row must not free its ID for reuse.
	ok, err := repo.DeleteByID(ctx, "u1", second)
	require.NoError(t, err)
	require.True(t, ok)

	third := insertText(t, repo, "u1", "three", 300)
	assert.Greater(t, third, second)
}

func TestMessageRepository_FindByID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id := insertText(t, repo, "u1", "hello", 123)

	msg, err := repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, int64(123), msg.Timestamp)
	assert.Equal(t, "hello", msg.Text)
	assert.Empty(t, msg.FilePath)
	assert.Equal(t, "c1", msg.ClientID)
	assert.Equal(t, "u1", msg.UserID)

	// Another user must not see the row.
	_, err = repo.FindByID(ctx, "u2", id)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)

	_, err = repo.FindByID(ctx, "u1", id+1000)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestMessageRepository_InsertFile(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id, err := repo.InsertFile(ctx, "u1", "c1", "report.pdf", "/files/abc/report.pdf", 500)
	require.NoError(t, err)

	msg, err := repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", msg.Text)
	assert.Equal(t, "/files/abc/report.pdf", msg.FilePath)
}

func TestMessageRepository_DeleteByID_ScopedToUser(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id := insertText(t, repo, "u1", "mine", 100)

	ok, err := repo.DeleteByID(ctx, "u2", id)
	require.NoError(t, err)
	assert.False(t, ok, "foreign delete must not remove the row")

	_, err = repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)

	ok, err = repo.DeleteByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.False(t, ok, "second delete must report no row")
}

func TestMessageRepository_ListOlder(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id1 := insertText(t, repo, "u1", "one", 100)
	id2 := insertText(t, repo, "u1", "two", 200)
	id3 := insertText(t, repo, "u1", "three", 300)
	insertText(t, repo, "u2", "other", 250)

	msgs, err := repo.ListOlder(ctx, "u1", id3+1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []int64{id3, id2, id1}, []int64{msgs[0].ID, msgs[1].ID, msgs[2].ID}, "newest first")

	// Cursor excludes the boundary ID itself.
	msgs, err = repo.ListOlder(ctx, "u1", id3, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, id2, msgs[0].ID)

	msgs, err = repo.ListOlder(ctx, "u1", id3+1, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	msgs, err = repo.ListOlder(ctx, "u1", id1, 10)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestMessageRepository_ListOlder_TimestampTieBrokenByID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id1 := insertText(t, repo, "u1", "a", 100)
	id2 := insertText(t, repo, "u1", "b", 100)
	id3 := insertText(t, repo, "u1", "c", 100)

	msgs, err := repo.ListOlder(ctx, "u1", id3+1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []int64{id3, id2, id1}, []int64{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestMessageRepository_ListNewer(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	id1 := insertText(t, repo, "u1", "one", 100)
	id2 := insertText(t, repo, "u1", "two", 200)
	id3 := insertText(t, repo, "u1", "three", 300)
	insertText(t, repo, "u2", "other", 250)

	msgs, err := repo.ListNewer(ctx, "u1", 0, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, []int64{id1, id2, id3}, []int64{msgs[0].ID, msgs[1].ID, msgs[2].ID}, "oldest first")

	msgs, err = repo.ListNewer(ctx, "u1", id1, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, id2, msgs[0].ID)

	msgs, err = repo.ListNewer(ctx, "u1", id3, 10)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestMessageRepository_NullColumnsScanEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// Legacy rows can carry NULL text and file path.
	res, err := db.ExecContext(ctx,
		`INSERT INTO messages (time_stamp, client_id, user_id) VALUES (?, ?, ?)`,
		100, "c1", "u1",
	)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	msg, err := repo.FindByID(ctx, "u1", id)
	require.NoError(t, err)
	assert.Empty(t, msg.Text)
	assert.Empty(t, msg.FilePath)
}
