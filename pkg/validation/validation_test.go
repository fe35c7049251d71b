package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMimeTypes(t *testing.T) {
	assert.True(t, ValidMimeTypes("image", []string{"image/jpeg", "image/png"}))
	assert.True(t, ValidMimeTypes("image", []string{"image/JPEG"}))
	assert.True(t, ValidMimeTypes("audio", []string{"audio/mpeg", "audio/mp4", "audio/mp3"}))

	// One bad file rejects the whole batch.
	assert.False(t, ValidMimeTypes("image", []string{"image/jpeg", "image/gif"}))
	assert.False(t, ValidMimeTypes("audio", []string{"audio/mpeg", "audio/ogg"}))

	assert.False(t, ValidMimeTypes("image", []string{"not-a-mimetype"}))
	assert.False(t, ValidMimeTypes("video", []string{"video/mp4"}))

	// Empty batch is trivially valid.
	assert.True(t, ValidMimeTypes("image", nil))
}

func TestValidSizes(t *testing.T) {
	max := int64(10 * 1024 * 1024)
	assert.True(t, ValidSizes([]int64{1024, max}, max))
	assert.False(t, ValidSizes([]int64{1024, max + 1}, max))

	// Zero max falls back to the default ceiling.
	assert.True(t, ValidSizes([]int64{DefaultMaxFileSize}, 0))
	assert.False(t, ValidSizes([]int64{DefaultMaxFileSize + 1}, 0))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("curator@museum.org"))
	assert.True(t, ValidateEmail("  Curator@Museum.ORG "))
	assert.False(t, ValidateEmail("curator@"))
	assert.False(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Sup3rSecret"))
	assert.False(t, ValidatePassword("short1A"))
	assert.False(t, ValidatePassword("alllowercase1"))
	assert.False(t, ValidatePassword("ALLUPPERCASE1"))
	assert.False(t, ValidatePassword("NoNumbersHere"))
}
