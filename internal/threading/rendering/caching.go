package rendering

import (
	"context"
	"image"
	"log"
	"sync"

	"reddust/internal/graphics"
	"reddust/internal/threading/core"

	"golang.org/x/image/draw"
)

// TextureCache memoizes decoded texture pixels keyed by texture name.
// Entries live as long as the cache; there is no eviction. Names are the cache
// identity, so two different images sharing a name alias the first one decoded.
// The cache is safe for concurrent use so textures can be decoded on a worker pool
// while the render loop reads them.
type TextureCache struct {
	cache  map[string]*textureEntry
	mutex  sync.RWMutex
	hits   *core.SafeCounter
	misses *core.SafeCounter
}

type textureEntry struct {
	raster *image.RGBA
	err    error
}

// NewTextureCache creates an empty texture cache
func NewTextureCache() *TextureCache {
	return &TextureCache{
		cache:  make(map[string]*textureEntry),
		hits:   core.NewSafeCounter(),
		misses: core.NewSafeCounter(),
	}
}

// Get returns the decoded pixels for tex, decoding them on first use.
// Decode failures are cached too and reported with a nil raster.
func (tc *TextureCache) Get(tex *graphics.Texture) (*image.RGBA, error) {
	if tex == nil {
		return nil, graphics.ErrNoImageSource
	}

	// First attempt: read lock allows concurrent lookups
	tc.mutex.RLock()
	if entry, exists := tc.cache[tex.Name]; exists {
		tc.mutex.RUnlock()
		tc.hits.Increment()
		return entry.raster, entry.err
	}
	tc.mutex.RUnlock()

	// Cache miss: decode outside the lock
	tc.misses.Increment()
	entry := decodeEntry(tex)

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	// Check again in case another goroutine stored it while we were decoding
	if existing, exists := tc.cache[tex.Name]; exists {
		return existing.raster, existing.err
	}
	if entry.err != nil {
		log.Printf("[TextureCache] Falling back to flat color for %q: %v", tex.Name, entry.err)
	}
	tc.cache[tex.Name] = entry
	return entry.raster, entry.err
}

// Lookup returns the decoded pixels for tex or nil when it is missing or undecodable
func (tc *TextureCache) Lookup(tex *graphics.Texture) *image.RGBA {
	if tex == nil {
		return nil
	}
	raster, _ := tc.Get(tex)
	return raster
}

// Preload decodes textures on the worker pool and waits for them to finish.
// Decode failures are cached, not returned; the error reports a cancelled
// context or a stopped pool.
func (tc *TextureCache) Preload(ctx context.Context, pool *core.WorkerPool, textures []*graphics.Texture) error {
	if len(textures) == 0 {
		return nil
	}
	return pool.ParallelFor(ctx, 0, len(textures), func(i int) {
		_, _ = tc.Get(textures[i])
	})
}

// Len returns the number of cached entries, failed decodes included
func (tc *TextureCache) Len() int {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return len(tc.cache)
}

// Stats returns the number of cache hits and misses so far
func (tc *TextureCache) Stats() (hits, misses int64) {
	return tc.hits.Get(), tc.misses.Get()
}

// decodeEntry decodes a texture into a zero-origin RGBA raster
func decodeEntry(tex *graphics.Texture) *textureEntry {
	img, err := tex.Decode()
	if err != nil {
		return &textureEntry{err: err}
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return &textureEntry{err: graphics.ErrNoImageSource}
	}
	raster := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(raster, raster.Bounds(), img, bounds.Min, draw.Src)
	return &textureEntry{raster: raster}
}
