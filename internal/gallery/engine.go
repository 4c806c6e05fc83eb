package gallery

// Apply computes the state that follows intent. The input state is never
// modified. On failure the returned state equals s and the error is one of
// ErrEmptyGallery, ErrNotOpen or an *IndexError.
func Apply(s State, in Intent) (State, error) {
	n := len(s.items)
	if n == 0 {
		return s, ErrEmptyGallery
	}

	switch in := in.(type) {
	case Open:
		if !s.inRange(in.Index) {
			return s, &IndexError{Index: in.Index, Len: n}
		}
		next := s.withCursor(in.Index)
		next.open = true
		return next, nil
	case Close:
		if !s.open {
			return s, nil
		}
		next := s
		next.open = false
		return next, nil
	}

	if !s.open {
		return s, ErrNotOpen
	}

	switch in := in.(type) {
	case Next:
		return s.withCursor((s.cursor + 1) % n), nil
	case Previous:
		return s.withCursor((s.cursor - 1 + n) % n), nil
	case JumpFirst:
		return s.withCursor(0), nil
	case JumpLast:
		return s.withCursor(n - 1), nil
	case JumpTo:
		if !s.inRange(in.Index) {
			return s, &IndexError{Index: in.Index, Len: n}
		}
		return s.withCursor(in.Index), nil
	}
	return s, nil
}
