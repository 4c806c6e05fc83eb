package preload

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestDecodeDownscales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 200, 100)

	img, err := Decode(path, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	orig, err := Decode(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, orig.Bounds().Dx())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("https://example.com/a.jpg", 10)
	assert.ErrorIs(t, err, ErrRemoteSource)

	_, err = Decode(filepath.Join(t.TempDir(), "missing.png"), 10)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = Decode(bad, 10)
	assert.ErrorIs(t, err, image.ErrFormat)
	assert.Contains(t, err.Error(), "looks like png")
}

func TestFitKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, img, Fit(img, 20, 20).(*image.RGBA))
	tall := Fit(image.NewRGBA(image.Rect(0, 0, 10, 100)), 40, 20)
	assert.Equal(t, 2, tall.Bounds().Dx())
	assert.Equal(t, 20, tall.Bounds().Dy())
}

func TestCacheEvictsOldest(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	c.store("a", img)
	c.store("b", img)
	c.store("c", img)
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, 2, c.Len())

	var nilCache *Cache
	_, ok := nilCache.Lookup("a")
	assert.False(t, ok)
}

type collector struct {
	mu      sync.Mutex
	results []Result
	ch      chan Result
}

func newCollector() *collector {
	return &collector{ch: make(chan Result, 64)}
}

func (c *collector) deliver(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.ch <- r
}

func (c *collector) wait(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-c.ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for preload result")
		return Result{}
	}
}

func TestPreloaderLoadsAndCaches(t *testing.T) {
	cache, err := NewCache(8)
	require.NoError(t, err)
	col := newCollector()
	calls := atomic.NewInt32(0)

	p := New(Config{Workers: 2, MaxDimension: 64}, cache, col.deliver)
	p.SetDecoder(func(path string, maxDim int) (image.Image, error) {
		calls.Inc()
		if path == "broken.jpg" {
			return nil, errors.New("corrupt")
		}
		return image.NewGray(image.Rect(0, 0, 4, 4)), nil
	})
	p.Start(context.Background())
	defer func() { require.NoError(t, p.Close()) }()

	require.NoError(t, p.Request(1, []string{"a.jpg", "broken.jpg"}))
	got := map[string]error{}
	for i := 0; i < 2; i++ {
		r := col.wait(t)
		assert.Equal(t, uint64(1), r.Generation)
		got[r.Source] = r.Err
	}
	assert.NoError(t, got["a.jpg"])
	assert.EqualError(t, got["broken.jpg"], "corrupt")

	_, ok := cache.Lookup("a.jpg")
	assert.True(t, ok)

	// Cached sources are answered without decoding again.
	require.NoError(t, p.Request(2, []string{"a.jpg"}))
	r := col.wait(t)
	assert.Equal(t, Result{Source: "a.jpg", Generation: 2}, r)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, uint64(2), p.Latest())
}

func TestPreloaderSkipsSupersededJobs(t *testing.T) {
	cache, err := NewCache(8)
	require.NoError(t, err)
	col := newCollector()

	p := New(Config{Workers: 1}, cache, col.deliver)
	p.SetDecoder(func(path string, maxDim int) (image.Image, error) {
		return image.NewGray(image.Rect(0, 0, 1, 1)), nil
	})

	// Queue both generations before any worker runs.
	require.NoError(t, p.Request(1, []string{"old.jpg"}))
	require.NoError(t, p.Request(2, []string{"new.jpg"}))
	p.Start(context.Background())

	r := col.wait(t)
	assert.Equal(t, "new.jpg", r.Source)
	require.NoError(t, p.Close())

	assert.False(t, cache.Contains("old.jpg"), "superseded job should not be decoded")
}

func TestPreloaderRejectsRequestsAfterClose(t *testing.T) {
	cache, err := NewCache(1)
	require.NoError(t, err)
	p := New(Config{}, cache, nil)
	p.Start(context.Background())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Request(1, []string{"a.jpg"}), ErrClosed)
}
