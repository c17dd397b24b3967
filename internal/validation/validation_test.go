package validation

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDetectImage(t *testing.T) {
	data := pngBytes(t)

	mimeType, err := DetectImage(data, ImageConstraints)
	if err != nil {
		t.Fatalf("DetectImage: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mime = %q, want image/png", mimeType)
	}

	truncated := data[:20]
	if _, err := DetectImage(truncated, ImageConstraints); !errors.Is(err, ErrUnreadableImage) {
		t.Errorf("truncated png = %v, want ErrUnreadableImage", err)
	}

	for _, bad := range [][]byte{nil, []byte("hello world"), []byte("%PDF-1.4")} {
		if _, err := DetectImage(bad, ImageConstraints); !errors.Is(err, ErrUnreadableImage) {
			t.Errorf("DetectImage(%q) = %v, want ErrUnreadableImage", bad, err)
		}
	}
}

func TestValidateDate(t *testing.T) {
	for _, d := range []string{"2026-01-31", "2024-02-29"} {
		if err := ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%q) = %v", d, err)
		}
	}
	for _, d := range []string{"", "2026-1-31", "2025-02-29", "31/01/2026", "2026-13-01"} {
		if err := ValidateDate(d); err == nil {
			t.Errorf("ValidateDate(%q) accepted", d)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("name", "  "); err == nil || err.Error() != "name is required" {
		t.Errorf("blank name = %v", err)
	}
	if err := ValidateName("title", string(make([]byte, 101))); err == nil {
		t.Error("long name accepted")
	}
	if err := ValidateName("name", "Morning walk"); err != nil {
		t.Errorf("valid name = %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("weight_kg", 70, 10, 400); err != nil {
		t.Errorf("in range = %v", err)
	}
	if err := ValidateRange("weight_kg", 5, 10, 400); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("below range = %v", err)
	}
}
