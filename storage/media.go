package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"journal-cms/models"
)

// Kind selects the allow-list and the on-disk subdirectory of an upload.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var allowedExtensions = map[Kind]map[string]bool{
	KindImage: {".png": true, ".jpg": true, ".jpeg": true, ".gif": true},
	KindVideo: {".mp4": true, ".avi": true, ".mov": true, ".wmv": true},
}

func (k Kind) dir() string {
	if k == KindVideo {
		return "videos"
	}
	return "images"
}

// Store persists uploaded media and hands back relative paths suitable for
// keeping on an article record.
type Store interface {
	Save(kind Kind, filename string, src io.Reader) (string, error)
	Remove(relpath string)
}

// MediaStore writes uploads below Root, split into uploads/images and
// uploads/videos. Validation is by filename suffix only.
type MediaStore struct {
	Root string
}

func NewMediaStore(root string) *MediaStore {
	return &MediaStore{Root: root}
}

// Allowed checks the extension of filename against the allow-list for kind,
// case-insensitively.
func Allowed(kind Kind, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[kind][ext]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename reduces a client-supplied name to its base name and strips
// everything outside a conservative character set.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	filename = unsafeChars.ReplaceAllString(filename, "")
	filename = strings.Trim(filename, "._")
	return filename
}

// Save validates the upload and writes it to disk under a timestamp-prefixed
// name, returning the relative path to persist. The file write is not
// transactional with the article record that will reference it.
func (s *MediaStore) Save(kind Kind, filename string, src io.Reader) (string, error) {
	if !Allowed(kind, filename) {
		return "", models.ErrFileType
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return "", models.ErrFileType
	}
	stored := fmt.Sprintf("%d_%s", time.Now().Unix(), name)

	dir := filepath.Join(s.Root, "uploads", kind.dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join("uploads", kind.dir(), stored), nil
}

// Remove deletes a previously stored file. Failures are logged and swallowed;
// article deletion must not depend on the file still being there.
func (s *MediaStore) Remove(relpath string) {
	if relpath == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(relpath))); err != nil && !os.IsNotExist(err) {
		log.Printf("remove media %s: %v", relpath, err)
	}
}
