// Package storage holds uploaded product images. The core only ever stores
// the reference path a driver hands back, never the bytes.
//
// Two drivers are available:
//   - "local": local filesystem under a public directory (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
package storage

import (
	"fmt"

	"inventory-service/pkg/config"
)

// Store is the narrow contract the upload handlers depend on.
type Store interface {
	// Put writes content under name and returns the stable public path the
	// asset is reachable at. The caller persists that path, nothing else.
	Put(name string, content []byte) (string, error)

	// Delete removes the asset a previous Put returned path for.
	Delete(path string) error

	// Exists reports whether an asset is still present at path.
	Exists(path string) bool
}

// New selects the configured driver.
func New(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return newLocalStore(cfg), nil
	case "s3":
		return newS3Store(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
