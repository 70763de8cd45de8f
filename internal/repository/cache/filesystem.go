package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemCache stores one file per entry under root.
// Structure: {root}/{hash[0:2]}/{hash}, where hash is the hex SHA-256 of the key,
// so arbitrary URLs map to safe file names.
type FilesystemCache struct {
	root string
}

func NewFilesystemCache(root string) (*FilesystemCache, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FilesystemCache{
		root: root,
	}, nil
}

var _ TileCache = (*FilesystemCache)(nil)

func (c *FilesystemCache) Get(_ context.Context, k string) (TileCacheValue, bool, error) {
	content, err := os.ReadFile(c.keyToPath(k))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return content, true, nil
}

func (c *FilesystemCache) Set(_ context.Context, k string, v TileCacheValue) error {
	path := c.keyToPath(k)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write atomically
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(v); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

func (c *FilesystemCache) keyToPath(k string) string {
	sum := sha256.Sum256([]byte(k))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.root, name[:2], name)
}
