package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauc/audioguide-backend/internal/config"
)

// LocalBackend stores assets on the local filesystem. Written files are
// served under {ServerURL}/uploads/ via a static mount.
type LocalBackend struct {
	root      string
	serverURL string
}

func NewLocalBackend(cfg *config.Config) (*LocalBackend, error) {
	if err := os.MkdirAll(cfg.LocalAssetsPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create assets root: %w", err)
	}
	return &LocalBackend{
		root:      cfg.LocalAssetsPath,
		serverURL: strings.TrimRight(cfg.ServerURL, "/"),
	}, nil
}

func (b *LocalBackend) Name() string { return "local" }

// Write saves the stream under root/dir/filename. The file lands in a
// .part temp file first and is renamed into place after fsync, so a
// caller never observes a partially written file.
func (b *LocalBackend) Write(ctx context.Context, dir, filename string, r io.Reader, contentType string) (*StoredFile, error) {
	relPath := dir + "/" + filename
	absPath := filepath.Join(b.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}

	tmp := absPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	if err := f.Sync(); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	return &StoredFile{
		Path: relPath,
		Key:  filename,
		Size: n,
		URL:  b.ResolveURL(dir, filename),
	}, nil
}

// Delete removes the given storage-root-relative paths. Missing files
// are logged and skipped; only real filesystem failures are returned.
func (b *LocalBackend) Delete(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		absPath := filepath.Join(b.root, filepath.FromSlash(p))
		if err := os.Remove(absPath); err != nil {
			if os.IsNotExist(err) {
				log.Printf("storage: file already absent, skipping delete: %s", p)
				continue
			}
			log.Printf("storage: failed to delete %s: %v", p, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *LocalBackend) ResolveURL(dir, filename string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", b.serverURL, dir, filename)
}
