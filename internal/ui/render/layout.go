package render

import statepkg "github.com/kk-code-lab/lightbox/internal/state"

// Layout records where the last grid frame put its tiles so mouse clicks can
// be mapped back to photos. It is zero while the lightbox or help is shown.
type Layout struct {
	Top, Left     int
	Columns, Rows int
	Scroll        int
	Count         int
}

// TileAt returns the photo index under screen cell x, y, or -1.
func (l Layout) TileAt(x, y int) int {
	if l.Columns == 0 || x < l.Left || y < l.Top {
		return -1
	}
	pitchX := statepkg.TileWidth + statepkg.TileGap
	pitchY := statepkg.TileHeight + statepkg.RowGap
	col, offX := (x-l.Left)/pitchX, (x-l.Left)%pitchX
	row, offY := (y-l.Top)/pitchY, (y-l.Top)%pitchY
	if offX >= statepkg.TileWidth || offY >= statepkg.TileHeight {
		return -1
	}
	if col >= l.Columns || row >= l.Rows {
		return -1
	}
	idx := (l.Scroll+row)*l.Columns + col
	if idx >= l.Count {
		return -1
	}
	return idx
}

func gridLayout(state *statepkg.AppState, w, h int) Layout {
	cols := statepkg.GridColumns(w)
	used := cols*(statepkg.TileWidth+statepkg.TileGap) - statepkg.TileGap
	left := (w - used) / 2
	if left < 0 {
		left = 0
	}
	return Layout{
		Top:     statepkg.HeaderRows,
		Left:    left,
		Columns: cols,
		Rows:    statepkg.GridVisibleRows(h),
		Scroll:  state.GridScroll,
		Count:   state.Gallery.Len(),
	}
}

func (r *Renderer) setLayout(l Layout) {
	r.layoutMu.Lock()
	r.layout = l
	r.layoutMu.Unlock()
}

// LastLayout returns the grid geometry of the last frame. ok is false when
// the last frame did not show the grid.
func (r *Renderer) LastLayout() (Layout, bool) {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	return r.layout, r.layout.Columns > 0
}
