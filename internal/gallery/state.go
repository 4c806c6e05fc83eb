package gallery

import "fmt"

// State is the navigation state of one gallery. Transitions return new values;
// a State is never mutated after construction.
type State struct {
	items  []Descriptor
	cursor int
	open   bool
}

// New returns a closed gallery over a copy of items with the cursor at 0.
func New(items []Descriptor) State {
	return State{items: cloneDescriptors(items)}
}

func cloneDescriptors(items []Descriptor) []Descriptor {
	if len(items) == 0 {
		return nil
	}
	out := make([]Descriptor, len(items))
	copy(out, items)
	return out
}

// Len reports the number of items in the active sequence.
func (s State) Len() int { return len(s.items) }

// IsOpen reports whether navigation intents are accepted.
func (s State) IsOpen() bool { return s.open }

// Items returns a copy of the active sequence.
func (s State) Items() []Descriptor { return cloneDescriptors(s.items) }

// Item returns the descriptor at i.
func (s State) Item(i int) (Descriptor, bool) {
	if i < 0 || i >= len(s.items) {
		return Descriptor{}, false
	}
	return s.items[i], true
}

// Cursor returns the current position; ok is false for an empty gallery.
func (s State) Cursor() (int, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	return s.cursor, true
}

// Selected returns the descriptor under the cursor.
func (s State) Selected() (Descriptor, bool) {
	idx, ok := s.Cursor()
	if !ok {
		return Descriptor{}, false
	}
	return s.items[idx], true
}

// Counter formats the "position / total" label shown next to the image.
func (s State) Counter() string {
	idx, ok := s.Cursor()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d / %d", idx+1, len(s.items))
}

// PreloadTargets returns the neighbours of the cursor worth fetching ahead of
// time: cursor-1 then cursor+1, each only when in range.
func (s State) PreloadTargets() []Descriptor {
	idx, ok := s.Cursor()
	if !ok {
		return nil
	}
	var targets []Descriptor
	for _, i := range [2]int{idx - 1, idx + 1} {
		if i >= 0 && i < len(s.items) {
			targets = append(targets, s.items[i])
		}
	}
	return targets
}

// WithItems replaces the sequence wholesale and resets the cursor to 0. An
// empty replacement also closes the lightbox.
func (s State) WithItems(items []Descriptor) State {
	next := State{items: cloneDescriptors(items), open: s.open}
	if len(next.items) == 0 {
		next.open = false
	}
	return next
}

func (s State) withCursor(cursor int) State {
	s.cursor = cursor
	return s
}

func (s State) inRange(i int) bool {
	return i >= 0 && i < len(s.items)
}
