package graphics

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
)

// ErrNoImageSource is returned by Decode when a handle carries neither an image nor an opener.
var ErrNoImageSource = errors.New("texture has no image source")

// Texture is a handle to an image owned by the asset layer.
// Name is the texture's identity: two handles with the same name are treated as the
// same image by every cache keyed on it, so names must be unique across distinct images.
type Texture struct {
	Name string

	// Exactly one of Image or Open is normally set. Image is used as-is;
	// Open is called lazily and its bytes decoded with the registered decoders.
	Image image.Image
	Open  func() (io.ReadCloser, error)
}

// NewImageTexture wraps an already decoded image
func NewImageTexture(name string, img image.Image) *Texture {
	return &Texture{Name: name, Image: img}
}

// Decode returns the image behind the handle, decoding it from Open if needed.
func (t *Texture) Decode() (image.Image, error) {
	if t == nil {
		return nil, ErrNoImageSource
	}
	if t.Image != nil {
		return t.Image, nil
	}
	if t.Open == nil {
		return nil, fmt.Errorf("texture %q: %w", t.Name, ErrNoImageSource)
	}

	rc, err := t.Open()
	if err != nil {
		return nil, fmt.Errorf("texture %q: failed to open: %w", t.Name, err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("texture %q: failed to decode image: %w", t.Name, err)
	}
	return img, nil
}
