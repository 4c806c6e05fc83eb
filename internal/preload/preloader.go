package preload

import (
	"context"
	"errors"
	"image"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Request after Close.
var ErrClosed = errors.New("preloader closed")

// Result reports a finished load. Generation echoes the request so consumers
// can drop completions that belong to an older cursor position.
type Result struct {
	Source     string
	Generation uint64
	Err        error
}

// Config sizes the preloader.
type Config struct {
	Workers      int
	MaxDimension int
	// Queue bounds pending jobs; older jobs are dropped first when full.
	Queue int
}

// DecodeFunc loads one image. Decode is used when nil.
type DecodeFunc func(path string, maxDim int) (image.Image, error)

type job struct {
	source     string
	generation uint64
}

// Preloader decodes images on background workers and stores them in a Cache.
// Requests are fire-and-forget: results arrive through deliver in no
// particular order, and jobs superseded by a newer generation are skipped
// before decoding starts.
type Preloader struct {
	cfg     Config
	cache   *Cache
	decode  DecodeFunc
	deliver func(Result)

	latest atomic.Uint64
	closed atomic.Bool
	flight singleflight.Group

	mu     sync.Mutex
	jobs   chan job
	cancel context.CancelFunc
	group  *errgroup.Group
}

// New creates a stopped preloader. deliver is called from worker goroutines.
func New(cfg Config, cache *Cache, deliver func(Result)) *Preloader {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Queue < 1 {
		cfg.Queue = 16
	}
	return &Preloader{
		cfg:     cfg,
		cache:   cache,
		decode:  Decode,
		deliver: deliver,
		jobs:    make(chan job, cfg.Queue),
	}
}

// SetDecoder replaces the decode function; call before Start.
func (p *Preloader) SetDecoder(fn DecodeFunc) {
	if fn != nil {
		p.decode = fn
	}
}

// Start launches the workers. They stop when ctx is cancelled or Close is called.
func (p *Preloader) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.group != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.cfg.Workers; i++ {
		g.Go(func() error {
			p.work(ctx)
			return nil
		})
	}
	p.group = g
}

func (p *Preloader) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			if j.generation < p.latest.Load() {
				continue
			}
			p.emit(Result{Source: j.source, Generation: j.generation, Err: p.load(j.source)})
		}
	}
}

func (p *Preloader) load(source string) error {
	if p.cache.Contains(source) {
		return nil
	}
	_, err, _ := p.flight.Do(source, func() (any, error) {
		img, err := p.decode(source, p.cfg.MaxDimension)
		if err != nil {
			return nil, err
		}
		p.cache.store(source, img)
		return nil, nil
	})
	return err
}

func (p *Preloader) emit(r Result) {
	if p.deliver != nil && !p.closed.Load() {
		p.deliver(r)
	}
}

// Request queues sources for generation. Already cached sources are reported
// immediately on the caller's goroutine. A newer generation makes every older
// queued job obsolete.
func (p *Preloader) Request(generation uint64, sources []string) error {
	if p.closed.Load() {
		return ErrClosed
	}
	for {
		cur := p.latest.Load()
		if generation <= cur || p.latest.CompareAndSwap(cur, generation) {
			break
		}
	}
	for _, src := range sources {
		if src == "" {
			continue
		}
		if p.cache.Contains(src) {
			p.emit(Result{Source: src, Generation: generation})
			continue
		}
		p.enqueue(job{source: src, generation: generation})
	}
	return nil
}

func (p *Preloader) enqueue(j job) {
	for {
		select {
		case p.jobs <- j:
			return
		default:
		}
		// Queue full: drop the oldest pending job to make room.
		select {
		case <-p.jobs:
		default:
		}
	}
}

// Latest returns the newest requested generation.
func (p *Preloader) Latest() uint64 {
	return p.latest.Load()
}

// Close stops the workers and waits for them. Pending jobs are discarded.
func (p *Preloader) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.mu.Lock()
	cancel, g := p.cancel, p.group
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if g != nil {
		return g.Wait()
	}
	return nil
}
