package glasscube

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
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/glasscube/glasscube/content"
)

const (
	jpegQuality   = 85
	maxUploadSize = 50 << 20 // 50MB
)

var errUploadTooLarge = errors.New("file too large (max 50MB)")

// readUpload reads an uploaded form file and prepares it for the media API.
// Images wider than maxWidth are downscaled and re-encoded as JPEG; anything
// else is passed through unchanged.
func readUpload(fh *multipart.FileHeader, maxWidth int) (string, []byte, error) {
	if fh.Size > maxUploadSize {
		return "", nil, errUploadTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadSize {
		return "", nil, errUploadTooLarge
	}

	name := uploadFilename(fh.Filename)
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return name, data, nil
	}
	resized, ok, err := downscaleImage(data, maxWidth)
	if err != nil || !ok {
		// undecodable or already small enough: upload as-is
		return name, data, nil
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg", resized, nil
}

// downscaleImage resizes an image wider than maxWidth and encodes it as
// JPEG. ok is false when no resize was needed.
func downscaleImage(data []byte, maxWidth int) ([]byte, bool, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return nil, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := max(h*maxWidth/w, 1)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), true, nil
}

// uploadFilename slugifies the base name and keeps the lowercased extension.
func uploadFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := content.Slugify(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if base == "" {
		base = "upload"
	}
	return base + ext
}
