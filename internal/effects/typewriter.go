// Package effects holds the decorative animations. Every effect is a pure
// function of time so the event loop can redraw at any tick.
package effects

import (
	"time"
	"unicode/utf8"
)

// Typewriter reveals Text one rune at a time.
type Typewriter struct {
	Text     string
	Delay    time.Duration // before the first rune
	Interval time.Duration // between runes
	// CursorHold keeps the caret visible after the last rune.
	CursorHold time.Duration
}

// NewTypewriter uses the reference timings: 2s delay, 100ms per rune, caret held 1s.
func NewTypewriter(text string) Typewriter {
	return Typewriter{
		Text:       text,
		Delay:      2 * time.Second,
		Interval:   100 * time.Millisecond,
		CursorHold: time.Second,
	}
}

func (t Typewriter) runes(elapsed time.Duration) int {
	total := utf8.RuneCountInString(t.Text)
	if elapsed < t.Delay {
		return 0
	}
	if t.Interval <= 0 {
		return total
	}
	n := int((elapsed-t.Delay)/t.Interval) + 1
	if n > total {
		n = total
	}
	return n
}

// Visible returns the prefix of Text shown after elapsed.
func (t Typewriter) Visible(elapsed time.Duration) string {
	n := t.runes(elapsed)
	if n == 0 {
		return ""
	}
	i := 0
	for pos := range t.Text {
		if i == n {
			return t.Text[:pos]
		}
		i++
	}
	return t.Text
}

func (t Typewriter) doneAt() time.Duration {
	total := utf8.RuneCountInString(t.Text)
	if total == 0 || t.Interval <= 0 {
		return t.Delay
	}
	return t.Delay + time.Duration(total-1)*t.Interval
}

// Done reports whether every rune is visible.
func (t Typewriter) Done(elapsed time.Duration) bool {
	return elapsed >= t.doneAt()
}

// CursorVisible reports whether the caret should be drawn after the text.
func (t Typewriter) CursorVisible(elapsed time.Duration) bool {
	return elapsed < t.doneAt()+t.CursorHold
}

// Animating reports whether the effect still changes over time.
func (t Typewriter) Animating(elapsed time.Duration) bool {
	return t.Text != "" && t.CursorVisible(elapsed)
}
