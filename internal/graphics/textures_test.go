package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestProcedural(t *testing.T) {
	for _, name := range ProceduralNames() {
		img := Procedural(name)
		if img == nil {
			t.Errorf("Expected a procedural %q texture", name)
			continue
		}
		if b := img.Bounds(); b.Dx() != proceduralSize || b.Dy() != proceduralSize {
			t.Errorf("%q: expected %dx%d, got %v", name, proceduralSize, proceduralSize, b)
		}
	}
	if Procedural("lava") != nil {
		t.Error("Expected nil for an unknown procedural texture")
	}
}

func TestNewCheckerImage(t *testing.T) {
	a := color.RGBA{255, 0, 0, 255}
	b := color.RGBA{0, 0, 255, 255}
	img := NewCheckerImage(4, 4, 2, a, b)
	if img.RGBAAt(0, 0) != a || img.RGBAAt(2, 0) != b || img.RGBAAt(2, 2) != a {
		t.Error("Unexpected checker layout")
	}
}

func TestTextureManager_Resolution(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "brick.png"))
	if err != nil {
		t.Fatalf("Failed to create png: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 3))); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	f.Close()

	tm := NewTextureManager(dir)

	// A file wins over the procedural texture of the same name
	brick := tm.Texture("brick")
	if brick == nil || brick.Open == nil {
		t.Fatalf("Expected a file-backed brick texture, got %+v", brick)
	}
	img, err := brick.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected the 2x3 file image, got %v", img.Bounds())
	}
	if tm.Texture("brick") != brick {
		t.Error("Expected the same handle on repeated lookups")
	}

	if stone := tm.Texture("stone"); stone == nil || stone.Image == nil {
		t.Error("Expected a procedural stone texture")
	}
	if tm.Texture("lava") != nil || tm.Texture("") != nil {
		t.Error("Expected nil for unknown and empty names")
	}

	loaded := tm.Loaded()
	if len(loaded) != 2 || loaded[0].Name != "brick" || loaded[1].Name != "stone" {
		t.Errorf("Expected brick and stone loaded, got %v", loaded)
	}
}

func TestTexture_DecodeErrors(t *testing.T) {
	var nilTexture *Texture
	if _, err := nilTexture.Decode(); !errors.Is(err, ErrNoImageSource) {
		t.Errorf("Expected ErrNoImageSource for nil handle, got %v", err)
	}
	if _, err := (&Texture{Name: "empty"}).Decode(); !errors.Is(err, ErrNoImageSource) {
		t.Errorf("Expected ErrNoImageSource for an empty handle, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	bad := NewTextureManager(filepath.Dir(path)).Texture("bad")
	if bad == nil {
		t.Fatal("Expected a handle for bad.png")
	}
	if _, err := bad.Decode(); err == nil {
		t.Error("Expected a decode error for a corrupt file")
	}
}
