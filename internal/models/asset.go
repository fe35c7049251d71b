package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/mauc/audioguide-backend/internal/storage"
	"github.com/mauc/audioguide-backend/pkg/mediapath"
)

// Asset is a single stored media file plus its metadata. It is an
// embedded value, not a standalone record: it lives inside its owner's
// row as a jsonb column. A written asset's key is immutable; replacing
// an asset means writing a new one and discarding the old.
type Asset struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	Lang string `json:"lang,omitempty"`
}

func (a Asset) IsZero() bool { return a.Key == "" }

// Role classifies the asset from its own shape: audio assets always
// carry a language tag, images never do.
func (a Asset) Role() mediapath.Role {
	if a.Lang != "" {
		return mediapath.RoleAudio
	}
	return mediapath.RoleImage
}

// RelPath reconstructs the storage-root-relative path from the key.
func (a Asset) RelPath() (string, error) {
	return mediapath.RelPath(a.Role(), a.Key)
}

func (a Asset) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Asset) Scan(src interface{}) error {
	if src == nil {
		*a = Asset{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("models: unsupported source type for Asset")
}

// AssetList is an ordered set of audio assets with at most one entry per
// distinct lang. Order is irrelevant; lang uniqueness is load-bearing
// and maintained by Merge.
type AssetList []Asset

func (l AssetList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(AssetList{})
	}
	return json.Marshal(l)
}

func (l *AssetList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("models: unsupported source type for AssetList")
}

// Merge applies the audio update rule: an incoming asset replaces the
// existing entry with the same lang, or is appended if that lang is not
// present. Langs absent from incoming are left untouched, so a client
// can update one track without resending the others.
func (l AssetList) Merge(incoming AssetList) AssetList {
	merged := make(AssetList, len(l))
	copy(merged, l)
	for _, in := range incoming {
		replaced := false
		for i := range merged {
			if merged[i].Lang == in.Lang {
				merged[i] = in
				replaced = true
			}
		}
		if !replaced {
			merged = append(merged, in)
		}
	}
	return merged
}

// Stale returns the receiver's assets whose (lang, url) pair no longer
// appears in merged. These are the deletion candidates after an update.
func (l AssetList) Stale(merged AssetList) []Asset {
	var stale []Asset
	for _, old := range l {
		kept := false
		for _, m := range merged {
			if m.Lang == old.Lang && m.URL == old.URL {
				kept = true
				break
			}
		}
		if !kept {
			stale = append(stale, old)
		}
	}
	return stale
}

// MediaOwner is implemented by every record type that holds media.
type MediaOwner interface {
	CollectAssets() []Asset
}

// cascadeAssets deletes every asset owned by a record being deleted. It
// runs from the models' BeforeDelete hooks so no deletion path can skip
// it; the storage backend rides in the statement context. Cleanup is
// best-effort and never blocks the record delete.
func cascadeAssets(tx *gorm.DB, owner MediaOwner) error {
	assets := owner.CollectAssets()
	if len(assets) == 0 {
		return nil
	}

	ctx := context.Background()
	if tx.Statement != nil && tx.Statement.Context != nil {
		ctx = tx.Statement.Context
	}
	backend, ok := storage.FromContext(ctx)
	if !ok {
		log.Printf("models: no storage backend in delete context, leaving %d asset(s) behind", len(assets))
		return nil
	}

	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		p, err := a.RelPath()
		if err != nil {
			log.Printf("models: cannot resolve path for asset %s: %v", a.Key, err)
			continue
		}
		paths = append(paths, p)
	}
	if err := backend.Delete(ctx, paths); err != nil {
		log.Printf("models: asset cleanup after record delete failed: %v", err)
	}
	return nil
}
