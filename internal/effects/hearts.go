package effects

import (
	"math/rand/v2"
	"time"
)

// HeartKind distinguishes ambient floating hearts from easter-egg rain.
type HeartKind int

const (
	HeartFloat HeartKind = iota
	HeartFall
)

// Heart is one particle. X and Y are fractions of the drawing area: X in
// [0,1) from the left, Y in [0,1] from the top.
type Heart struct {
	Kind  HeartKind
	X, Y  float64
	Glyph rune
	born  time.Time
	life  time.Duration
}

// HeartConfig tunes the particle field.
type HeartConfig struct {
	// Interval between ambient hearts; zero disables them.
	Interval time.Duration
	// FloatLife bounds how long an ambient heart takes to cross the area.
	FloatLifeMin, FloatLifeMax time.Duration
	// FallLife bounds how long a rain heart takes to fall.
	FallLifeMin, FallLifeMax time.Duration
}

// DefaultHeartConfig: one heart every 3s rising for 3 to 6s; rain falls in 2 to 5s.
func DefaultHeartConfig() HeartConfig {
	return HeartConfig{
		Interval:     3 * time.Second,
		FloatLifeMin: 3 * time.Second,
		FloatLifeMax: 6 * time.Second,
		FallLifeMin:  2 * time.Second,
		FallLifeMax:  5 * time.Second,
	}
}

// HeartField animates floating and falling hearts.
type HeartField struct {
	cfg       HeartConfig
	rng       *rand.Rand
	hearts    []Heart
	pending   []time.Time // scheduled rain spawns
	nextFloat time.Time
}

// NewHeartField creates a field. rng may be nil for a time-seeded source.
func NewHeartField(cfg HeartConfig, rng *rand.Rand) *HeartField {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &HeartField{cfg: cfg, rng: rng}
}

func (f *HeartField) lifetime(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(f.rng.Int64N(int64(max-min)))
}

func (f *HeartField) spawn(kind HeartKind, now time.Time) {
	h := Heart{Kind: kind, X: f.rng.Float64(), born: now}
	switch kind {
	case HeartFall:
		h.Glyph = '💖'
		h.life = f.lifetime(f.cfg.FallLifeMin, f.cfg.FallLifeMax)
	default:
		h.Glyph = '💕'
		h.Y = 1
		h.life = f.lifetime(f.cfg.FloatLifeMin, f.cfg.FloatLifeMax)
	}
	if h.life <= 0 {
		h.life = time.Second
	}
	f.hearts = append(f.hearts, h)
}

// Rain schedules n falling hearts spaced by spacing, starting at now.
func (f *HeartField) Rain(now time.Time, n int, spacing time.Duration) {
	for i := 0; i < n; i++ {
		f.pending = append(f.pending, now.Add(time.Duration(i)*spacing))
	}
}

// Step advances every particle to now, spawning and retiring as needed.
func (f *HeartField) Step(now time.Time) {
	if f.cfg.Interval > 0 {
		if f.nextFloat.IsZero() {
			f.nextFloat = now.Add(f.cfg.Interval)
		}
		for !now.Before(f.nextFloat) {
			f.spawn(HeartFloat, f.nextFloat)
			f.nextFloat = f.nextFloat.Add(f.cfg.Interval)
		}
	}

	kept := f.pending[:0]
	for _, at := range f.pending {
		if now.Before(at) {
			kept = append(kept, at)
			continue
		}
		f.spawn(HeartFall, at)
	}
	f.pending = kept

	alive := f.hearts[:0]
	for _, h := range f.hearts {
		age := now.Sub(h.born)
		if age < 0 {
			age = 0
		}
		if age >= h.life {
			continue
		}
		progress := float64(age) / float64(h.life)
		if h.Kind == HeartFall {
			h.Y = progress
		} else {
			h.Y = 1 - progress
		}
		alive = append(alive, h)
	}
	f.hearts = alive
}

// Hearts returns the live particles.
func (f *HeartField) Hearts() []Heart {
	out := make([]Heart, len(f.hearts))
	copy(out, f.hearts)
	return out
}

// Active reports whether anything is on screen or scheduled.
func (f *HeartField) Active() bool {
	return len(f.hearts) > 0 || len(f.pending) > 0 || f.cfg.Interval > 0
}

// Raining reports whether rain hearts are visible or still scheduled.
func (f *HeartField) Raining() bool {
	if len(f.pending) > 0 {
		return true
	}
	for _, h := range f.hearts {
		if h.Kind == HeartFall {
			return true
		}
	}
	return false
}
