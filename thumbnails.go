package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// DefaultThumbWidth suits the project and blog cards.
	DefaultThumbWidth = 800
	jpegQuality       = 80
)

// Thumbnail is one generated card image.
type Thumbnail struct {
	Source string
	Path   string
	Width  int
	Height int
	Size   int
}

// MakeThumbnail decodes an image from src, scales it down to maxWidth when
// wider, and encodes it as JPEG.
func MakeThumbnail(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// ThumbnailDir converts every PNG, JPEG and GIF in srcDir into a slugged
// JPEG in dstDir. Files that fail to decode are reported, not fatal.
func ThumbnailDir(srcDir, dstDir string, maxWidth int) ([]Thumbnail, []error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, []error{err}
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, []error{fmt.Errorf("create thumbnail dir: %w", err)}
	}

	var out []Thumbnail
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !isImageName(e.Name()) {
			continue
		}
		t, err := thumbnailFile(filepath.Join(srcDir, e.Name()), dstDir, maxWidth)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		out = append(out, t)
	}
	return out, errs
}

func thumbnailFile(path, dstDir string, maxWidth int) (Thumbnail, error) {
	f, err := os.Open(path)
	if err != nil {
		return Thumbnail{}, err
	}
	defer f.Close()

	data, size, err := MakeThumbnail(f, maxWidth)
	if err != nil {
		return Thumbnail{}, err
	}
	name := slugifyFilename(filepath.Base(path))
	if name == "" {
		name = "image"
	}
	dst := filepath.Join(dstDir, name+".jpg")
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return Thumbnail{}, fmt.Errorf("write thumbnail: %w", err)
	}
	return Thumbnail{Source: path, Path: dst, Width: size.X, Height: size.Y, Size: len(data)}, nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	return Slugify(strings.TrimSuffix(name, filepath.Ext(name)))
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
