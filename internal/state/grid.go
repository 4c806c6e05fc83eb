package state

func (s *AppState) gridColumns() int {
	return GridColumns(s.ScreenWidth)
}

// moveGrid moves the tile selection without wrapping.
func (s *AppState) moveGrid(dir GridDirection) {
	n := s.Gallery.Len()
	if n == 0 {
		return
	}
	cols := s.gridColumns()
	page := cols * GridVisibleRows(s.ScreenHeight)
	idx := s.GridSelected
	switch dir {
	case GridLeft:
		idx--
	case GridRight:
		idx++
	case GridUp:
		if idx-cols >= 0 {
			idx -= cols
		}
	case GridDown:
		if idx+cols < n {
			idx += cols
		} else if idx/cols < (n-1)/cols {
			// Partial last row: land on its final tile.
			idx = n - 1
		}
	case GridFirst:
		idx = 0
	case GridLast:
		idx = n - 1
	case GridPageUp:
		idx -= page
	case GridPageDown:
		idx += page
	}
	s.GridSelected = clamp(idx, 0, n-1)
	s.ensureGridVisible()
}

// ensureGridVisible scrolls so the selected tile's row is on screen.
func (s *AppState) ensureGridVisible() {
	n := s.Gallery.Len()
	if n == 0 {
		s.GridSelected = 0
		s.GridScroll = 0
		return
	}
	s.GridSelected = clamp(s.GridSelected, 0, n-1)
	cols := s.gridColumns()
	visible := GridVisibleRows(s.ScreenHeight)
	row := s.GridSelected / cols
	if row < s.GridScroll {
		s.GridScroll = row
	}
	if row >= s.GridScroll+visible {
		s.GridScroll = row - visible + 1
	}
	lastRow := (n - 1) / cols
	maxScroll := lastRow - visible + 1
	if maxScroll < 0 {
		maxScroll = 0
	}
	s.GridScroll = clamp(s.GridScroll, 0, maxScroll)
}

// TileAt maps a grid-relative tile position to an index, or -1.
func (s *AppState) TileAt(col, row int) int {
	cols := s.gridColumns()
	if col < 0 || col >= cols || row < 0 {
		return -1
	}
	idx := (s.GridScroll+row)*cols + col
	if idx >= s.Gallery.Len() {
		return -1
	}
	return idx
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
