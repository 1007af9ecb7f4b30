// Package storage places uploaded attachments on the local filesystem in the
// layout served under the /files prefix: <baseDir>/<uploadID>/<name>.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix under which the base directory is served.
const PublicPrefix = "/files"

// LocalStore implements ports.FileStore on a local directory. Each upload
// gets its own directory named by a generated identifier, so Remove can
// release the whole upload with a single directory removal.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// BaseDir returns the directory attachments are written to.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// Save writes src under a fresh upload directory and returns the public path.
func (s *LocalStore) Save(ctx context.Context, name string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The client controls the file name; keep only its base component.
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	uploadID := uuid.NewString()
	dir := filepath.Join(s.baseDir, uploadID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path.Join(PublicPrefix, uploadID, name), nil
}

// Remove releases the upload directory referenced by a public path
// (/files/<uploadID>/<name>).
func (s *LocalStore) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, PublicPrefix+"/")
	if !ok {
		return fmt.Errorf("unexpected file path %q", publicPath)
	}
	uploadID, _, _ := strings.Cut(rel, "/")
	if uploadID == "" || uploadID == "." || uploadID == ".." || strings.ContainsRune(uploadID, filepath.Separator) {
		return fmt.Errorf("unexpected file path %q", publicPath)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, uploadID))
}
