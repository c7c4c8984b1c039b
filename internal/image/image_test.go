package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 64, B: 32, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writePNG(t, path, 10, 8)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 10 || got.Dy() != 8 {
		t.Errorf("Load() bounds = %v, want 10x8", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") expected error")
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load() on missing file expected error")
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() on directory expected error")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(garbage); err == nil {
		t.Error("Load() on non-image data expected error")
	}
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writePNG(t, path, 17, 3)

	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 17 || h != 3 {
		t.Errorf("Dimensions() = %dx%d, want 17x3", w, h)
	}
}
