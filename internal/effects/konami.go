package effects

// Key is one input in the Konami sequence.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyB
	KeyA
)

var konamiSequence = [...]Key{KeyUp, KeyUp, KeyDown, KeyDown, KeyLeft, KeyRight, KeyLeft, KeyRight, KeyB, KeyA}

// Konami watches a sliding window of the most recent keys.
type Konami struct {
	window []Key
}

// Feed records k and reports whether the sequence has just been completed.
// The window is cleared after a match.
func (k *Konami) Feed(key Key) bool {
	k.window = append(k.window, key)
	if len(k.window) > len(konamiSequence) {
		k.window = k.window[len(k.window)-len(konamiSequence):]
	}
	if len(k.window) != len(konamiSequence) {
		return false
	}
	for i, want := range konamiSequence {
		if k.window[i] != want {
			return false
		}
	}
	k.window = k.window[:0]
	return true
}

// Reset forgets every recorded key.
func (k *Konami) Reset() {
	k.window = k.window[:0]
}
