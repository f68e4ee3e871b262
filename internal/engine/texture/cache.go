package texture

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/logger"
)

// Loader turns a file path into a GPU texture handle.
type Loader func(path string) (uint32, error)

// Cache deduplicates texture loads by path. A path that fails to load maps
// to handle 0 and is not retried.
type Cache struct {
	mu      sync.Mutex
	root    string
	load    Loader
	release func(uint32)
	handles map[string]uint32
}

// NewCache creates a cache that resolves relative paths against root.
// A nil loader means GL upload through LoadFile.
func NewCache(root string, load Loader) *Cache {
	c := &Cache{
		root:    root,
		load:    load,
		handles: make(map[string]uint32),
	}
	if c.load == nil {
		c.load = LoadFile
		c.release = Delete
	}
	return c
}

func (c *Cache) resolve(path string) string {
	if c.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.root, path)
}

// Load returns the handle for path, loading it on first use.
// Returns 0 when the texture is unavailable.
func (c *Cache) Load(path string) uint32 {
	if path == "" {
		return 0
	}
	full := c.resolve(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.handles[full]; ok {
		return h
	}

	h, err := c.load(full)
	if err != nil {
		logger.WarnOnce("texture:"+full, "texture unavailable",
			zap.String("path", full), zap.Error(err))
		h = 0
	}
	c.handles[full] = h
	if h != 0 {
		logger.Debug("texture loaded", zap.String("path", full), zap.Uint32("id", h))
	}
	return h
}

// Len returns the number of distinct paths seen, failures included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Release frees every loaded texture and empties the cache.
func (c *Cache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.handles {
		if h != 0 && c.release != nil {
			c.release(h)
		}
	}
	c.handles = make(map[string]uint32)
}

// LoadFile reads, decodes and uploads an image file.
func LoadFile(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	img, err := Decode(path, data)
	if err != nil {
		return 0, err
	}
	return Upload(ImageToRGBA(img, true)), nil
}
