package mediapath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleForField(t *testing.T) {
	role, err := RoleForField("image")
	require.NoError(t, err)
	assert.Equal(t, RoleImage, role)

	role, err = RoleForField("audioDesc")
	require.NoError(t, err)
	assert.Equal(t, RoleAudio, role)

	role, err = RoleForField("audioGuia")
	require.NoError(t, err)
	assert.Equal(t, RoleAudio, role)

	_, err = RoleForField("document")
	assert.Error(t, err)
}

func TestSubroleForField(t *testing.T) {
	sub, err := SubroleForField("audioDesc")
	require.NoError(t, err)
	assert.Equal(t, "desc", sub)

	sub, err = SubroleForField("audioGuia")
	require.NoError(t, err)
	assert.Equal(t, "guia", sub)

	_, err = SubroleForField("image")
	assert.Error(t, err)
}

func TestLangFromFilename(t *testing.T) {
	lang, ok := LangFromFilename("guia-br.mp3")
	require.True(t, ok)
	assert.Equal(t, "br", lang)

	lang, ok = LangFromFilename("Audio-EN.mp3")
	require.True(t, ok)
	assert.Equal(t, "en", lang)

	_, ok = LangFromFilename("track.mp3")
	assert.False(t, ok)

	_, ok = LangFromFilename("guia-fr.mp3")
	assert.False(t, ok)
}

func TestOwnerFromPath(t *testing.T) {
	owner, err := OwnerFromPath("/api/v1/artworks/:id")
	require.NoError(t, err)
	assert.Equal(t, "artworks", owner)

	owner, err = OwnerFromPath("/api/v1/admins")
	require.NoError(t, err)
	assert.Equal(t, "admins", owner)

	_, err = OwnerFromPath("/health")
	assert.Error(t, err)
}

func TestResolveIsDeterministic(t *testing.T) {
	dir, err := Resolve(RoleImage, "artworks", "", "")
	require.NoError(t, err)
	assert.Equal(t, "images/artworks", dir)

	dir, err = Resolve(RoleAudio, "artworks", "guia", "br")
	require.NoError(t, err)
	assert.Equal(t, "audios/artworks/guia/br", dir)

	again, err := Resolve(RoleAudio, "artworks", "guia", "br")
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	_, err = Resolve(RoleAudio, "artworks", "", "br")
	assert.Error(t, err)

	_, err = Resolve(RoleImage, "", "", "")
	assert.Error(t, err)
}

func TestImageKeyShape(t *testing.T) {
	key := ImageKey("artworks", "Mona Lisa.JPG")
	assert.True(t, strings.HasPrefix(key, "artworks-Mona Lisa-"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestAudioKeyShape(t *testing.T) {
	key := AudioKey("artworks", "guia", "br", "guia-br.MP3")
	assert.True(t, strings.HasPrefix(key, "artworks-guia-br-"))
	assert.True(t, strings.HasSuffix(key, ".mp3"))
}

func TestAudioKeysDistinctWithinSameMillisecond(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := AudioKey("artworks", "guia", "br", "guia-br.mp3")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestDirForKeyInvertsGeneration(t *testing.T) {
	imgKey := ImageKey("artworks", "detail.png")
	dir, err := DirForKey(RoleImage, imgKey)
	require.NoError(t, err)
	assert.Equal(t, "images/artworks", dir)

	audioKey := AudioKey("artists", "desc", "en", "desc-en.mp3")
	dir, err = DirForKey(RoleAudio, audioKey)
	require.NoError(t, err)
	assert.Equal(t, "audios/artists/desc/en", dir)
}

func TestDirForKeyMalformed(t *testing.T) {
	_, err := DirForKey(RoleImage, "nodashes")
	assert.Error(t, err)

	_, err = DirForKey(RoleAudio, "owner-only")
	assert.Error(t, err)
}

func TestRelPath(t *testing.T) {
	key := AudioKey("artworks", "guia", "br", "guia-br.mp3")
	p, err := RelPath(RoleAudio, key)
	require.NoError(t, err)
	assert.Equal(t, "audios/artworks/guia/br/"+key, p)
}
