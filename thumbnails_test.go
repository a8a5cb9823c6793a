package folio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestMakeThumbnailScalesDown(t *testing.T) {
	data, size, err := MakeThumbnail(bytes.NewReader(pngBytes(t, 1600, 900)), 800)
	if err != nil {
		t.Fatalf("MakeThumbnail: %v", err)
	}
	if size != image.Pt(800, 450) {
		t.Fatalf("size = %v, want 800x450", size)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a jpeg: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 450 {
		t.Errorf("jpeg is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestMakeThumbnailKeepsSmallImages(t *testing.T) {
	_, size, err := MakeThumbnail(bytes.NewReader(pngBytes(t, 300, 200)), 800)
	if err != nil {
		t.Fatal(err)
	}
	if size != image.Pt(300, 200) {
		t.Fatalf("size = %v, want unchanged", size)
	}
}

func TestMakeThumbnailRejectsGarbage(t *testing.T) {
	if _, _, err := MakeThumbnail(bytes.NewReader([]byte("not an image")), 800); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestThumbnailDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "thumbs")
	if err := os.WriteFile(filepath.Join(src, "Campus Connect.png"), pngBytes(t, 1000, 500), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "broken.jpg"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	thumbs, errs := ThumbnailDir(src, dst, 500)
	if len(thumbs) != 1 {
		t.Fatalf("got %d thumbnails, want 1", len(thumbs))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for broken.jpg", len(errs))
	}
	want := filepath.Join(dst, "campus-connect.jpg")
	if thumbs[0].Path != want || thumbs[0].Width != 500 || thumbs[0].Height != 250 {
		t.Errorf("thumb = %+v", thumbs[0])
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("thumbnail not written: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":       "hello-world",
		"  Go & WASM!  ":    "go-wasm",
		"already-slugged":   "already-slugged",
		"---":               "",
		"Resume (2025).pdf": "resume-2025-pdf",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
