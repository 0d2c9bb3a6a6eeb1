package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
		format string
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) }, "png"},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, testImage()) }, "bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatal(err)
			}
			img, format, err := LoadBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("LoadBytes() error = %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if got := img.Bounds(); got.Dx() != 3 || got.Dy() != 2 {
				t.Errorf("bounds = %v, want 3x2", got)
			}
			r, _, _, _ := img.At(0, 0).RGBA()
			if r>>8 != 255 {
				t.Errorf("pixel (0,0) red = %d, want 255", r>>8)
			}
		})
	}
}

func TestLoadBytesEmpty(t *testing.T) {
	if _, _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadBytes(nil) error = %v, want ErrEmptyData", err)
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, _, err := LoadBytes([]byte("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	img, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 3 {
		t.Errorf("Load() = %s %v", format, img.Bounds())
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) returned nil error")
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"b.JPG", true},
		{"c.webp", true},
		{"d.tiff", true},
		{"e.svg", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
