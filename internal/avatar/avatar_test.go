package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

// uploadedFile builds a multipart.FileHeader the way Fiber hands it to a
// handler, by round-tripping a form through the multipart reader.
func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["avatar"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSave_WritesAvatarAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	avatarPath, thumbPath, err := store.Save(uploadedFile(t, "photo.png", pngBytes(t, 640, 480)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(avatarPath, "/uploads/avatars/") {
		t.Fatalf("unexpected avatar path %q", avatarPath)
	}
	if thumbPath != ThumbPath(avatarPath) {
		t.Fatalf("thumb path mismatch: %q vs %q", thumbPath, ThumbPath(avatarPath))
	}

	name := filepath.Base(avatarPath)
	if _, err := os.Stat(filepath.Join(dir, "avatars", name)); err != nil {
		t.Fatalf("avatar not written: %v", err)
	}

	thumb, err := imaging.Open(filepath.Join(dir, "avatars", "thumbs", filepath.Base(thumbPath)))
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("thumbnail must be 200x200, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSave_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if _, _, err := store.Save(uploadedFile(t, "notes.txt", []byte("not an image"))); err != ErrUnsupportedImage {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}

	// the rejected upload must not linger on disk
	entries, err := os.ReadDir(filepath.Join(dir, "avatars"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Fatalf("rejected upload left behind: %s", e.Name())
		}
	}
}

func TestThumbPath(t *testing.T) {
	if got := ThumbPath("/uploads/avatars/a1.jpg"); got != "/uploads/avatars/thumbs/a1.png" {
		t.Fatalf("unexpected thumb path %q", got)
	}
	if got := ThumbPath(""); got != "" {
		t.Fatalf("empty avatar must map to empty thumb, got %q", got)
	}
}
