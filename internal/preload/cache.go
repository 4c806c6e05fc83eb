package preload

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps the most recently decoded images. It is safe for concurrent use.
type Cache struct {
	images *lru.Cache[string, image.Image]
}

// NewCache creates a cache holding at most size images.
func NewCache(size int) (*Cache, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, err
	}
	return &Cache{images: c}, nil
}

// Lookup returns the decoded image for source.
func (c *Cache) Lookup(source string) (image.Image, bool) {
	if c == nil {
		return nil, false
	}
	return c.images.Get(source)
}

// Contains reports presence without touching recency.
func (c *Cache) Contains(source string) bool {
	return c != nil && c.images.Contains(source)
}

func (c *Cache) store(source string, img image.Image) {
	c.images.Add(source, img)
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	return c.images.Len()
}
