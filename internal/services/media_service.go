package services

import (
	"bytes"
	"context"
	"log"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/storage"
	"github.com/mauc/audioguide-backend/pkg/mediapath"
	"github.com/mauc/audioguide-backend/pkg/validation"
)

// Upload is one file extracted from a multipart request, buffered so it
// can be validated before anything touches the storage backend.
type Upload struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte

	lang string // filled during validation for audio uploads
}

// MediaSet holds the assets written for one request, grouped the way
// their owner stores them: one image plus per-field audio lists.
type MediaSet struct {
	Image  models.Asset
	Audios map[string]models.AssetList
}

// All flattens the set for rollback tracking.
func (m *MediaSet) All() []models.Asset {
	if m == nil {
		return nil
	}
	var assets []models.Asset
	if !m.Image.IsZero() {
		assets = append(assets, m.Image)
	}
	for _, list := range m.Audios {
		assets = append(assets, list...)
	}
	return assets
}

// AudioFor returns the audio assets uploaded under a field.
func (m *MediaSet) AudioFor(field string) models.AssetList {
	if m == nil {
		return nil
	}
	return m.Audios[field]
}

// MediaService is the asset lifecycle engine: it validates uploads,
// resolves their storage location, generates keys, writes through the
// configured backend and cleans up files that requests orphan.
type MediaService struct {
	cfg     *config.Config
	backend storage.Backend
}

func NewMediaService(cfg *config.Config, backend storage.Backend) *MediaService {
	return &MediaService{cfg: cfg, backend: backend}
}

func (s *MediaService) Backend() storage.Backend { return s.backend }

// DeleteContext attaches the backend to a context so model delete hooks
// can cascade asset deletion.
func (s *MediaService) DeleteContext(ctx context.Context) context.Context {
	return storage.NewContext(ctx, s.backend)
}

// ProcessForm runs the upload pipeline for one request: every batch is
// validated up front (mimetype subtype, size ceiling, audio language
// tag), and only then are files written. A write failure rolls back the
// files already written for this request before the error is returned,
// so the caller never holds a half-stored set.
func (s *MediaService) ProcessForm(ctx context.Context, ownerType string, form map[string][]Upload) (*MediaSet, error) {
	if len(form) == 0 {
		return nil, nil
	}
	if ownerType == "" {
		return nil, apperr.Internal("media: owner type could not be resolved from the request", nil)
	}

	// Validate everything before committing a single byte.
	for field, files := range form {
		role, err := mediapath.RoleForField(field)
		if err != nil {
			return nil, apperr.Internal("media: unmapped upload field", err)
		}

		mimeTypes := make([]string, len(files))
		sizes := make([]int64, len(files))
		for i, f := range files {
			mimeTypes[i] = f.ContentType
			sizes[i] = int64(len(f.Data))
		}
		if !validation.ValidMimeTypes(string(role), mimeTypes) {
			return nil, apperr.Validationf("field %s only accepts %s files", field, role)
		}
		if !validation.ValidSizes(sizes, s.cfg.MaxFileSize) {
			return nil, apperr.Validationf("a file in field %s exceeds the %d byte limit", field, s.cfg.MaxFileSize)
		}

		if role == mediapath.RoleAudio {
			if _, err := mediapath.SubroleForField(field); err != nil {
				return nil, apperr.Internal("media: unmapped audio field", err)
			}
			for i := range files {
				lang, ok := mediapath.LangFromFilename(files[i].Name)
				if !ok {
					return nil, apperr.Validationf("audio filename %q must encode a language tag (-br or -en)", files[i].Name)
				}
				files[i].lang = lang
			}
		}
	}

	set := &MediaSet{Audios: map[string]models.AssetList{}}
	var written []models.Asset

	for field, files := range form {
		role, _ := mediapath.RoleForField(field)
		for _, f := range files {
			var dir, key string
			var err error
			switch role {
			case mediapath.RoleImage:
				dir, err = mediapath.Resolve(role, ownerType, "", "")
				key = mediapath.ImageKey(ownerType, f.Name)
			case mediapath.RoleAudio:
				subrole, _ := mediapath.SubroleForField(field)
				dir, err = mediapath.Resolve(role, ownerType, subrole, f.lang)
				key = mediapath.AudioKey(ownerType, subrole, f.lang, f.Name)
			}
			if err != nil {
				s.Rollback(ctx, written)
				return nil, apperr.Internal("media: path resolution failed", err)
			}

			stored, err := s.backend.Write(ctx, dir, key, bytes.NewReader(f.Data), f.ContentType)
			if err != nil {
				s.Rollback(ctx, written)
				return nil, apperr.Storage("failed to store uploaded file", err)
			}

			asset := models.Asset{
				Name: f.Name,
				Size: int64(len(f.Data)),
				Key:  stored.Key,
				URL:  stored.URL,
				Lang: f.lang,
			}
			written = append(written, asset)
			if role == mediapath.RoleImage {
				set.Image = asset
			} else {
				set.Audios[field] = append(set.Audios[field], asset)
			}
		}
	}

	return set, nil
}

// Rollback deletes files written during a request that ultimately
// failed. Errors are logged, never surfaced: the request already carries
// its own failure.
func (s *MediaService) Rollback(ctx context.Context, assets []models.Asset) {
	if len(assets) == 0 {
		return
	}
	paths := s.relPaths(assets)
	log.Printf("media: rolling back %d uploaded file(s)", len(paths))
	if err := s.backend.Delete(ctx, paths); err != nil {
		log.Printf("media: rollback delete failed: %v", err)
	}
}

// CleanupStale deletes assets superseded by a successful update. It runs
// only after the record save, and failures never fail the request:
// leftovers are garbage, not data loss.
func (s *MediaService) CleanupStale(ctx context.Context, stale []models.Asset) {
	if len(stale) == 0 {
		return
	}
	if err := s.backend.Delete(ctx, s.relPaths(stale)); err != nil {
		log.Printf("media: stale asset cleanup failed: %v", err)
	}
}

func (s *MediaService) relPaths(assets []models.Asset) []string {
	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		p, err := a.RelPath()
		if err != nil {
			log.Printf("media: cannot resolve path for asset %s: %v", a.Key, err)
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
