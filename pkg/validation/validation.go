package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// DefaultMaxFileSize is the upload size ceiling applied when no explicit
// limit is configured (10 MB per file).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// allowedSubtypes maps a media role to the mimetype subtypes it accepts.
var allowedSubtypes = map[string][]string{
	"audio": {"mp4", "mpeg", "mp3"},
	"image": {"jpeg", "png", "jpg", "tiff"},
}

// ValidMimeTypes reports whether every mimetype in the batch has a
// subtype allowed for the role. A single invalid file rejects the whole
// batch; the caller owns rollback of anything already written.
func ValidMimeTypes(role string, mimeTypes []string) bool {
	allowed, ok := allowedSubtypes[role]
	if !ok {
		return false
	}
	for _, mt := range mimeTypes {
		_, subtype, found := strings.Cut(mt, "/")
		if !found {
			return false
		}
		match := false
		for _, a := range allowed {
			if strings.EqualFold(subtype, a) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

// ValidSizes reports whether every file in the batch is within maxBytes.
// Same whole-batch policy as ValidMimeTypes.
func ValidSizes(sizes []int64, maxBytes int64) bool {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}
	for _, s := range sizes {
		if s > maxBytes {
			return false
		}
	}
	return true
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}

// ValidatePassword validates password strength
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
