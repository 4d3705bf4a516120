package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem serves snapshots from a local directory. Keys map to relative
// file paths under the root.
type Filesystem struct {
	root string
}

// NewFilesystem returns a filesystem source rooted at path, which must exist.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("snapshot root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot root %s is not a directory", root)
	}
	return &Filesystem{root: root}, nil
}

// Driver implements Source.
func (f *Filesystem) Driver() Driver { return DriverFilesystem }

// Fetch implements Source.
func (f *Filesystem) Fetch(_ context.Context, key string) (io.ReadCloser, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(f.root, k))
}

// sanitizeKey forbids path traversal and absolute keys.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty snapshot key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute snapshot key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid snapshot key traversal")
	}
	return clean, nil
}
