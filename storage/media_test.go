package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-cms/models"
)

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(KindImage, "photo.png"))
	assert.True(t, Allowed(KindImage, "photo.PNG"))
	assert.True(t, Allowed(KindImage, "holiday.JpEg"))
	assert.False(t, Allowed(KindImage, "payload.exe"))
	assert.False(t, Allowed(KindImage, "clip.mp4"))
	assert.False(t, Allowed(KindImage, "noextension"))

	assert.True(t, Allowed(KindVideo, "clip.mp4"))
	assert.True(t, Allowed(KindVideo, "clip.MOV"))
	assert.False(t, Allowed(KindVideo, "photo.png"))
}

func TestSaveWritesTimestampedFile(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	relpath, err := store.Save(KindImage, "my photo.PNG", strings.NewReader("fake-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relpath, "uploads/images/"), relpath)
	assert.Regexp(t, regexp.MustCompile(`^uploads/images/\d+_my_photo\.PNG$`), relpath)

	data, err := os.ReadFile(filepath.Join(store.Root, filepath.FromSlash(relpath)))
	require.NoError(t, err)
	assert.Equal(t, "fake-bytes", string(data))
}

func TestSaveVideoGoesToVideosDir(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	relpath, err := store.Save(KindVideo, "clip.mp4", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relpath, "uploads/videos/"), relpath)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	_, err := store.Save(KindImage, "payload.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrFileType)
}

func TestSaveStripsDirectoryTraversal(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	relpath, err := store.Save(KindImage, "../../etc/secret.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, relpath, "..")
	assert.Regexp(t, regexp.MustCompile(`^uploads/images/\d+_secret\.png$`), relpath)
}

func TestRemoveMissingFileIsSilent(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	// Must not panic or surface anything.
	store.Remove("uploads/images/1_gone.png")
	store.Remove("")
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	store := NewMediaStore(t.TempDir())

	relpath, err := store.Save(KindImage, "photo.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	store.Remove(relpath)

	_, statErr := os.Stat(filepath.Join(store.Root, filepath.FromSlash(relpath)))
	assert.True(t, os.IsNotExist(statErr))
}
