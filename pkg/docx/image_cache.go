package docx

import (
	"container/list"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ImageCacheConfig contains configuration options for the image cache
type ImageCacheConfig struct {
	// MaxSize is the maximum number of descriptors to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached descriptors. 0 means no expiration.
	TTL time.Duration
}

// ImageCache keeps identified images keyed by absolute file path. An entry is dropped
// when the file's size or modification time no longer matches. Safe for concurrent use.
type ImageCache struct {
	mu     sync.Mutex
	cache  map[string]*imageCacheEntry
	lru    *list.List
	config ImageCacheConfig
}

type imageCacheEntry struct {
	key     string
	image   *Image
	size    int64
	modTime time.Time
	expiry  time.Time
	element *list.Element
}

// NewImageCache creates a cache configured from the global configuration
func NewImageCache() *ImageCache {
	config := GetGlobalConfig()
	return NewImageCacheWithConfig(ImageCacheConfig{
		MaxSize: config.ImageCacheMaxSize,
		TTL:     config.ImageCacheTTL,
	})
}

// NewImageCacheWithConfig creates a cache with the given configuration
func NewImageCacheWithConfig(config ImageCacheConfig) *ImageCache {
	return &ImageCache{
		cache:  make(map[string]*imageCacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Load returns the cached descriptor of src, calling load on a miss
func (c *ImageCache) Load(src string, load func(path string) (*Image, error)) (*Image, error) {
	key, err := filepath.Abs(src)
	if err != nil {
		key = filepath.Clean(src)
	}

	if c.config.MaxSize == 0 {
		return load(src)
	}

	info, err := os.Stat(key)
	if err != nil {
		return nil, &ImageError{Path: src, Cause: err}
	}

	if img, ok := c.lookup(key, info); ok {
		return img, nil
	}

	img, err := load(src)
	if err != nil {
		return nil, err
	}

	c.set(key, img, info)
	return img, nil
}

// Get returns the descriptor cached for path, if it is still current
func (c *ImageCache) Get(path string) (*Image, bool) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(key)
	if err != nil {
		return nil, false
	}
	return c.lookup(key, info)
}

func (c *ImageCache) lookup(key string, info os.FileInfo) (*Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		return nil, false
	}

	stale := entry.size != info.Size() || !entry.modTime.Equal(info.ModTime())
	expired := c.config.TTL > 0 && time.Now().After(entry.expiry)
	if stale || expired {
		c.removeLocked(entry)
		GetLogger().WithField("path", key).Debug("evicted image cache entry (stale=%t, expired=%t)", stale, expired)
		return nil, false
	}

	c.lru.MoveToFront(entry.element)
	return entry.image, true
}

func (c *ImageCache) set(key string, img *Image, info os.FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.cache[key]; exists {
		c.removeLocked(existing)
	}

	if c.lru.Len() >= c.config.MaxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeLocked(oldest.Value.(*imageCacheEntry))
		}
	}

	entry := &imageCacheEntry{
		key:     key,
		image:   img,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	if c.config.TTL > 0 {
		entry.expiry = time.Now().Add(c.config.TTL)
	}
	entry.element = c.lru.PushFront(entry)
	c.cache[key] = entry
}

func (c *ImageCache) removeLocked(entry *imageCacheEntry) {
	delete(c.cache, entry.key)
	c.lru.Remove(entry.element)
}

// Remove drops the entry for path
func (c *ImageCache) Remove(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.cache[key]; exists {
		c.removeLocked(entry)
	}
}

// Clear removes all entries
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*imageCacheEntry)
	c.lru = list.New()
}

// Size returns the number of cached descriptors
func (c *ImageCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
