// Package storage provides interchangeable persistence engines for media
// bytes. Backends expose write, delete and public-URL resolution; which
// engine runs is decided once at process start by configuration.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/mauc/audioguide-backend/internal/config"
)

// StoredFile describes a successfully written object.
type StoredFile struct {
	// Path is the storage-root-relative location ("audios/artworks/guia/br/...").
	Path string
	// Key is the file's canonical name within its directory.
	Key string
	// Size is the number of bytes written.
	Size int64
	// URL is the resolved public-access URL.
	URL string
}

// Backend is implemented by the local-disk and object-storage engines.
//
// Write is atomic from the caller's point of view: either a fully
// written file with a resolvable URL, or an error. Delete is idempotent;
// a missing file is logged, never an error. Neither retries.
type Backend interface {
	Write(ctx context.Context, dir, filename string, r io.Reader, contentType string) (*StoredFile, error)
	Delete(ctx context.Context, paths []string) error
	ResolveURL(dir, filename string) string
	Name() string
}

// New selects the configured backend at startup.
func New(cfg *config.Config) (Backend, error) {
	switch cfg.StorageType {
	case "local":
		return NewLocalBackend(cfg)
	case "s3":
		return NewS3Backend(cfg)
	}
	return nil, fmt.Errorf("storage: unknown STORAGE_TYPE %q", cfg.StorageType)
}
