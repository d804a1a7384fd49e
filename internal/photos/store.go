// Package photos stores item photos on the local filesystem.
package photos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes uploaded photos into a root directory and serves them back
// under a URL prefix. Files are named by a random UUID so uploads can never
// collide or traverse outside the root.
type Store struct {
	root      string
	urlPrefix string
}

// NewStore creates the root directory if needed.
func NewStore(root, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Root returns the directory photos are stored in.
func (s *Store) Root() string {
	return s.root
}

// Save validates that the upload is an image, writes it under a fresh UUID
// name, and returns the URL path it will be served from.
func (s *Store) Save(r io.Reader, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic":
	default:
		// Content type said image but the extension is unknown; fall back
		// to a neutral one rather than trusting the client's name.
		ext = ".img"
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Remove deletes a photo previously returned by Save. Unknown or already
// removed paths are ignored.
func (s *Store) Remove(urlPath string) error {
	name := strings.TrimPrefix(urlPath, s.urlPrefix+"/")
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}
