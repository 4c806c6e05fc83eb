package effects

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestTypewriterRevealsOneRunePerInterval(t *testing.T) {
	tw := NewTypewriter("愛 love")

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, ""},
		{1999 * time.Millisecond, ""},
		{2 * time.Second, "愛"},
		{2100 * time.Millisecond, "愛 "},
		{2250 * time.Millisecond, "愛 l"},
		{10 * time.Second, "愛 love"},
	}
	for _, tt := range tests {
		if got := tw.Visible(tt.elapsed); got != tt.want {
			t.Fatalf("Visible(%v)=%q want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestTypewriterCursorHeldAfterDone(t *testing.T) {
	tw := NewTypewriter("abc")
	done := 2*time.Second + 200*time.Millisecond

	if tw.Done(done - time.Millisecond) {
		t.Fatalf("should not be done before the last rune")
	}
	if !tw.Done(done) {
		t.Fatalf("should be done once the last rune shows")
	}
	if !tw.CursorVisible(done + 999*time.Millisecond) {
		t.Fatalf("caret should stay for a second after typing")
	}
	if tw.CursorVisible(done + time.Second) {
		t.Fatalf("caret should disappear after the hold")
	}
	if tw.Animating(done + time.Second) {
		t.Fatalf("finished typewriter should stop animating")
	}
}

func TestKonamiDetectsSequence(t *testing.T) {
	var k Konami
	seq := []Key{KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA}

	// Leading noise must not matter thanks to the sliding window.
	k.Feed(KeyOther)
	k.Feed(KeyUp)
	for i, key := range seq {
		matched := k.Feed(key)
		if matched != (i == len(seq)-1) {
			t.Fatalf("key %d: matched=%v", i, matched)
		}
	}

	// Window is cleared after a match.
	if k.Feed(KeyA) {
		t.Fatalf("single key after match should not match")
	}
}

func TestKonamiRejectsWrongOrder(t *testing.T) {
	var k Konami
	for _, key := range []Key{KeyUp, KeyDown, KeyUp, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA} {
		if k.Feed(key) {
			t.Fatalf("wrong order matched")
		}
	}
}

func newTestField(interval time.Duration) *HeartField {
	cfg := DefaultHeartConfig()
	cfg.Interval = interval
	return NewHeartField(cfg, rand.New(rand.NewPCG(1, 2)))
}

func TestHeartFieldFloatsOnInterval(t *testing.T) {
	f := newTestField(3 * time.Second)
	start := time.Unix(1000, 0)

	f.Step(start)
	if n := len(f.Hearts()); n != 0 {
		t.Fatalf("expected no hearts at start, got %d", n)
	}
	f.Step(start.Add(3 * time.Second))
	hearts := f.Hearts()
	if len(hearts) != 1 || hearts[0].Kind != HeartFloat {
		t.Fatalf("expected one floating heart, got %+v", hearts)
	}
	if hearts[0].Y != 1 {
		t.Fatalf("new floating heart should start at the bottom, Y=%v", hearts[0].Y)
	}

	f.Step(start.Add(4 * time.Second))
	if y := f.Hearts()[0].Y; y >= 1 || y <= 0 {
		t.Fatalf("floating heart should rise, Y=%v", y)
	}

	// Long after, floats have retired but new ones keep coming.
	f.Step(start.Add(60 * time.Second))
	for _, h := range f.Hearts() {
		if h.Y < 0 || h.Y > 1 || h.X < 0 || h.X >= 1 {
			t.Fatalf("heart out of bounds: %+v", h)
		}
	}
}

func TestHeartFieldRain(t *testing.T) {
	f := newTestField(0)
	start := time.Unix(2000, 0)

	f.Rain(start, 50, 100*time.Millisecond)
	if !f.Raining() {
		t.Fatalf("rain should be scheduled")
	}

	f.Step(start.Add(450 * time.Millisecond))
	if n := len(f.Hearts()); n != 5 {
		t.Fatalf("expected 5 hearts after 450ms, got %d", n)
	}
	for _, h := range f.Hearts() {
		if h.Kind != HeartFall {
			t.Fatalf("expected falling hearts only")
		}
	}

	f.Step(start.Add(20 * time.Second))
	if f.Raining() {
		t.Fatalf("rain should be over long after the last heart")
	}
	if f.Active() {
		t.Fatalf("field without ambient hearts should go idle")
	}
}
