// Package mediapath derives canonical storage locations and keys for
// uploaded media files. Paths are deterministic; all randomness lives in
// the key generator.
package mediapath

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Role is the top-level classification of an uploaded file.
type Role string

const (
	RoleImage Role = "image"
	RoleAudio Role = "audio"
)

var (
	fieldRoleRegex    = regexp.MustCompile(`(?i)^(audio|image)`)
	audioSubroleRegex = regexp.MustCompile(`(?i)(desc|guia)`)
	audioLangRegex    = regexp.MustCompile(`(?i)-(br|en)`)
)

// RoleForField maps a multipart field name to its role.
// "image" -> image, "audioDesc"/"audioGuia" -> audio.
func RoleForField(field string) (Role, error) {
	m := fieldRoleRegex.FindString(field)
	switch strings.ToLower(m) {
	case "image":
		return RoleImage, nil
	case "audio":
		return RoleAudio, nil
	}
	return "", fmt.Errorf("mediapath: field %q maps to no media role", field)
}

// SubroleForField extracts the audio sub-role from a field name.
// "audioDesc" -> "desc", "audioGuia" -> "guia".
func SubroleForField(field string) (string, error) {
	m := audioSubroleRegex.FindStringSubmatch(strings.ToLower(field))
	if m == nil {
		return "", fmt.Errorf("mediapath: field %q carries no audio sub-role", field)
	}
	return m[1], nil
}

// LangFromFilename extracts the two-letter language tag encoded in an
// audio file's original name, e.g. "guia-br.mp3" -> "br".
func LangFromFilename(name string) (string, bool) {
	m := audioLangRegex.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// OwnerFromPath derives the owner type from a request path, taking the
// resource segment after the API version prefix.
// "/api/v1/artworks/:id" -> "artworks".
func OwnerFromPath(path string) (string, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == "v1" && i+1 < len(segments) {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("mediapath: cannot derive owner type from path %q", path)
}

// Resolve builds the storage directory for a file.
// Images: "images/{owner}". Audio: "audios/{owner}/{subrole}/{lang}".
func Resolve(role Role, ownerType, subrole, lang string) (string, error) {
	if ownerType == "" {
		return "", fmt.Errorf("mediapath: owner type is required")
	}
	switch role {
	case RoleImage:
		return fmt.Sprintf("%ss/%s", role, ownerType), nil
	case RoleAudio:
		if subrole == "" || lang == "" {
			return "", fmt.Errorf("mediapath: audio path needs sub-role and lang")
		}
		return fmt.Sprintf("%ss/%s/%s/%s", role, ownerType, subrole, lang), nil
	}
	return "", fmt.Errorf("mediapath: unknown role %q", role)
}

// ImageKey builds the storage key for an image upload:
// "{owner}-{basename}-{unixMillis}{ext}". Images arrive at most one per
// request field, so the timestamp alone is collision-resistant.
func ImageKey(ownerType, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	return fmt.Sprintf("%s-%s-%d%s", ownerType, base, time.Now().UnixMilli(), ext)
}

// AudioKey builds the storage key for an audio upload:
// "{owner}-{subrole}-{lang}-{rand6}{unixMillis}{ext}". The random
// component exists because two tracks for the same owner and lang can be
// written within the same millisecond of a single multi-file request.
func AudioKey(ownerType, subrole, lang, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	n := 100000 + rand.Intn(900000)
	return fmt.Sprintf("%s-%s-%s-%d%d%s", ownerType, subrole, lang, n, time.Now().UnixMilli(), ext)
}

// DirForKey reconstructs the storage directory from a key alone. Keys
// encode owner type (and for audio, sub-role and lang), so deletion
// paths that only hold a key can still locate the file.
func DirForKey(role Role, key string) (string, error) {
	parts := strings.SplitN(key, "-", 4)
	switch role {
	case RoleImage:
		if len(parts) < 2 {
			return "", fmt.Errorf("mediapath: malformed image key %q", key)
		}
		return Resolve(RoleImage, parts[0], "", "")
	case RoleAudio:
		if len(parts) < 4 {
			return "", fmt.Errorf("mediapath: malformed audio key %q", key)
		}
		return Resolve(RoleAudio, parts[0], parts[1], parts[2])
	}
	return "", fmt.Errorf("mediapath: unknown role %q", role)
}

// RelPath returns the full storage-root-relative path for a key.
func RelPath(role Role, key string) (string, error) {
	dir, err := DirForKey(role, key)
	if err != nil {
		return "", err
	}
	return dir + "/" + key, nil
}
