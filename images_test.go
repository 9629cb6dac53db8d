package glasscube

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngOfWidth(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDownscaleImage(t *testing.T) {
	out, ok, err := downscaleImage(pngOfWidth(t, 400, 200), 100)
	if err != nil || !ok {
		t.Fatalf("downscale: ok=%v err=%v", ok, err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not jpeg: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestDownscaleImageKeepsSmallImages(t *testing.T) {
	_, ok, err := downscaleImage(pngOfWidth(t, 80, 40), 100)
	if err != nil || ok {
		t.Fatalf("expected no resize, ok=%v err=%v", ok, err)
	}
}

func TestUploadFilename(t *testing.T) {
	tests := map[string]string{
		"My Photo.PNG":  "my-photo.png",
		"clip.mp4":      "clip.mp4",
		"../../etc.jpg": "etc.jpg",
		"???.gif":       "upload.gif",
	}
	for in, want := range tests {
		if got := uploadFilename(in); got != want {
			t.Errorf("uploadFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
