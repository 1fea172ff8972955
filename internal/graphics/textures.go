package graphics

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// TextureManager hands out texture handles by name.
// A name resolves to <dir>/<name>.png when that file exists, otherwise to a
// procedural texture of the same name. Unknown names resolve to nil.
type TextureManager struct {
	dir      string
	textures map[string]*Texture
	missing  map[string]bool // Cache misses to avoid repeated file checks
	mutex    sync.Mutex
}

// NewTextureManager creates a texture manager rooted at dir
func NewTextureManager(dir string) *TextureManager {
	return &TextureManager{
		dir:      dir,
		textures: make(map[string]*Texture),
		missing:  make(map[string]bool),
	}
}

// Texture returns the handle for name, or nil if nothing provides it
func (tm *TextureManager) Texture(name string) *Texture {
	if name == "" {
		return nil
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	if tex, exists := tm.textures[name]; exists {
		return tex
	}
	if tm.missing[name] {
		return nil
	}

	if tex := tm.fileTexture(name); tex != nil {
		tm.textures[name] = tex
		return tex
	}
	if img := Procedural(name); img != nil {
		tex := NewImageTexture(name, img)
		tm.textures[name] = tex
		return tex
	}

	tm.missing[name] = true
	return nil
}

// fileTexture returns a lazily decoded handle if <dir>/<name>.png exists
func (tm *TextureManager) fileTexture(name string) *Texture {
	if tm.dir == "" {
		return nil
	}
	path := filepath.Join(tm.dir, name+".png")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return &Texture{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Loaded returns every handle resolved so far, sorted by name
func (tm *TextureManager) Loaded() []*Texture {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	result := make([]*Texture, 0, len(tm.textures))
	for _, tex := range tm.textures {
		result = append(result, tex)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
