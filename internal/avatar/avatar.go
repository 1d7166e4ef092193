package avatar

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

const thumbSize = 200

// Store saves uploaded avatars under <dir>/avatars and derives a 200x200
// fill-cropped PNG thumbnail under <dir>/avatars/thumbs.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the uploaded file and its thumbnail to disk and returns the
// public paths for both. The upload is rejected when it does not decode as
// an image.
func (s *Store) Save(file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	avatarDir := filepath.Join(s.dir, "avatars")
	if err := os.MkdirAll(filepath.Join(avatarDir, "thumbs"), 0o755); err != nil {
		return "", "", err
	}

	dest := filepath.Join(avatarDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", "", err
	}
	if err := out.Close(); err != nil {
		return "", "", err
	}

	img, err := imaging.Open(dest, imaging.AutoOrientation(true))
	if err != nil {
		os.Remove(dest)
		return "", "", ErrUnsupportedImage
	}

	thumb := imaging.Fill(img, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)
	avatarPath := "/uploads/avatars/" + name
	if err := imaging.Save(thumb, filepath.Join(avatarDir, "thumbs", thumbName(name))); err != nil {
		os.Remove(dest)
		return "", "", err
	}

	return avatarPath, ThumbPath(avatarPath), nil
}

// ThumbPath derives the thumbnail location from an avatar path. Empty input
// yields empty output so callers can pass through unset avatars.
func ThumbPath(avatarPath string) string {
	if avatarPath == "" {
		return ""
	}
	return path.Join(path.Dir(avatarPath), "thumbs", thumbName(path.Base(avatarPath)))
}

func thumbName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ".png"
}
