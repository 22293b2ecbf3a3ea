package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	labelapp "github.com/lucamadonia/dpp-backend/internal/application/label"
)

// Ensure LocalArtifactStorage implements ArtifactStorage
var _ labelapp.ArtifactStorage = (*LocalArtifactStorage)(nil)

// LocalArtifactStorage stores artifacts on the local filesystem. It is meant
// for development and single-node deployments; download URLs are served by
// the application's own artifact route and carry no real expiry.
type LocalArtifactStorage struct {
	root    string
	baseURL string
	urlTTL  time.Duration
	logger  *zap.Logger
}

// NewLocalArtifactStorage creates a filesystem-backed artifact store rooted
// at dir. baseURL is the public prefix under which artifacts are served.
func NewLocalArtifactStorage(dir, baseURL string, logger *zap.Logger) (*LocalArtifactStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalArtifactStorage{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		urlTTL:  15 * time.Minute,
		logger:  logger,
	}, nil
}

// Upload stores an artifact under the given key
func (l *LocalArtifactStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	l.logger.Debug("artifact written", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// GenerateDownloadURL returns the serving URL for an artifact. The expiry is
// advisory only; local files stay until deleted.
func (l *LocalArtifactStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if _, err := l.resolve(key); err != nil {
		return "", time.Time{}, err
	}
	if expiresIn <= 0 {
		expiresIn = l.urlTTL
	}
	return l.baseURL + "/artifacts/" + key, time.Now().Add(expiresIn), nil
}

// DeleteObject removes an artifact
func (l *LocalArtifactStorage) DeleteObject(_ context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// ObjectExists checks if an artifact exists
func (l *LocalArtifactStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	path, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return true, nil
}

// Root returns the storage root directory
func (l *LocalArtifactStorage) Root() string {
	return l.root
}

// resolve maps a storage key to a filesystem path, rejecting keys that would
// escape the root
func (l *LocalArtifactStorage) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	path := filepath.Join(l.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return path, nil
}
