package blobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore stores blobs on the local filesystem and serves them under
// {baseURL}/blobs/{key}. Keys are caller-scoped paths such as
// posts/{userID}/{postID}.jpg or avatars/{userID}.jpg.
type DiskStore struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// NewDiskStore creates a disk-backed blob store rooted at root
func NewDiskStore(root, baseURL string, logger *slog.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Root returns the directory blobs are written under, for wiring a file server
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Put(ctx context.Context, key string, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("data cannot be empty")
	}
	if len(data) > maxBlobSize {
		return "", fmt.Errorf("%w: %d bytes over %d byte limit", ErrBlobTooLarge, len(data), maxBlobSize)
	}
	mimeType = normalizeMimeType(mimeType)
	if !isValidMimeType(mimeType) {
		return "", fmt.Errorf("%w: %s (allowed: image/jpeg, image/png, image/webp)", ErrUnsupportedType, mimeType)
	}

	cleaned, err := s.cleanKey(key)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial blob
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp blob: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close blob: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize blob: %w", err)
	}

	s.logger.Debug("blob stored",
		"key", cleaned,
		"size", len(data),
		"mime", mimeType)

	return s.Resolve(cleaned), nil
}

func (s *DiskStore) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(dst); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobMissing
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Debug("blob deleted", "key", key)
	return nil
}

func (s *DiskStore) Resolve(key string) string {
	return s.baseURL + "/blobs/" + key
}

// cleanKey normalizes a key and rejects anything escaping the blob root
func (s *DiskStore) cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key cannot be empty")
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return cleaned, nil
}

// keyFromURL extracts the storage key from a URL returned by Put
func (s *DiskStore) keyFromURL(url string) (string, error) {
	idx := strings.Index(url, "/blobs/")
	if idx < 0 {
		return "", fmt.Errorf("not a blob URL: %q", url)
	}
	return s.cleanKey(url[idx+len("/blobs/"):])
}
