package sitepanel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	logoMaxWidth   = 256
	bannerMaxWidth = 1920
	jpegQuality    = 85
	maxUploadSize  = 10 << 20 // 10MB
	uploadsSubdir  = "uploads"
)

// processImage decodes an image from src, shrinks it to maxWidth if wider,
// and encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := Slugify(strings.TrimSuffix(name, ext))
	if base == "" {
		base = "image"
	}
	return base
}

// uniqueFilename returns base.jpg, or base-N.jpg when that name is taken in dir.
func uniqueFilename(dir, base string) string {
	candidate := base + ".jpg"
	for counter := 2; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

// formImage returns the uploaded file in field, or nil when none was sent.
func formImage(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	return fh, nil
}

// pendingImage is a processed upload that has not been written yet.
type pendingImage struct {
	base string // file name without extension
	data []byte
}

// prepareImage checks and resizes an upload in memory.
func prepareImage(fh *multipart.FileHeader, prefix string, maxWidth int) (*pendingImage, error) {
	if fh.Size > maxUploadSize {
		return nil, errUploadTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := processImage(src, maxWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidImage, err)
	}
	return &pendingImage{base: prefix + "-" + slugifyFilename(fh.Filename), data: data}, nil
}

// writeImages stores imgs under <staticDir>/uploads and returns their public
// paths in order. If any write fails, the files already written are removed.
func (a *App) writeImages(imgs []*pendingImage) ([]string, error) {
	if len(imgs) == 0 {
		return nil, nil
	}
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	paths := make([]string, 0, len(imgs))
	for _, img := range imgs {
		name := uniqueFilename(dir, img.base)
		if err := os.WriteFile(filepath.Join(dir, name), img.data, 0o644); err != nil {
			a.removeImages(paths)
			return nil, fmt.Errorf("write image: %w", err)
		}
		paths = append(paths, "/public/"+uploadsSubdir+"/"+name)
	}
	return paths, nil
}

// removeImages deletes uploads by public path.
func (a *App) removeImages(paths []string) {
	for _, p := range paths {
		file := filepath.Join(a.staticDir, uploadsSubdir, path.Base(p))
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.Echo.Logger.Warnf("remove upload %s: %v", file, err)
		}
	}
}

var (
	errUploadTooLarge = errors.New("file too large (max 10MB)")
	errInvalidImage   = errors.New("invalid image")
)
