package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestProcessReencodesAsJPEG(t *testing.T) {
	photo, err := Process(bytes.NewReader(encodePNG(t, 640, 480)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", photo.MIME)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	// Small images pass through at their original size.
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProcessDownscalesLargeImages(t *testing.T) {
	photo, err := Process(bytes.NewReader(encodePNG(t, 2560, 1440)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if cfg.Width != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, cfg.Width)
	}
	if cfg.Height != 720 {
		t.Errorf("expected aspect-preserving height 720, got %d", cfg.Height)
	}
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := Process(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Error("expected non-image data to be rejected")
	}
}
