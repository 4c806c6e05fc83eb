package render

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	"github.com/kk-code-lab/lightbox/internal/textutil"
)

// drawGrid renders the filtered photos as caption tiles.
func (r *Renderer) drawGrid(state *statepkg.AppState, w, h int) {
	layout := gridLayout(state, w, h)
	r.setLayout(layout)

	if layout.Count == 0 {
		style := tcell.StyleDefault.Foreground(r.theme.TileMutedFg)
		for i, line := range textutil.Wrap(r.loc.T("NoPhotos", nil), w-4, 3) {
			r.drawCentered(0, layout.Top+1+i, w, line, style)
		}
		return
	}

	items := state.Gallery.Items()
	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Columns; col++ {
			idx := (layout.Scroll+row)*layout.Columns + col
			if idx >= len(items) {
				return
			}
			x := layout.Left + col*(statepkg.TileWidth+statepkg.TileGap)
			y := layout.Top + row*(statepkg.TileHeight+statepkg.RowGap)
			d := items[idx]
			r.drawTile(x, y, tileText{
				caption:  d.Caption(),
				category: state.CategoryOf(d.Source()),
				name:     filepath.Base(d.Source()),
			}, idx == state.GridSelected)
		}
	}
}

type tileText struct {
	caption  string
	category string
	name     string
}

func (r *Renderer) drawTile(x, y int, t tileText, selected bool) {
	bg := tcell.StyleDefault.Background(r.theme.TileBg).Foreground(r.theme.TileFg)
	muted := bg.Foreground(r.theme.TileMutedFg)
	if selected {
		bg = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		muted = bg
	}
	r.fillRect(x, y, statepkg.TileWidth, statepkg.TileHeight, bg)

	inner := statepkg.TileWidth - 2
	caption := cleanText(t.caption)
	if caption == "" {
		caption = cleanText(t.name)
	}
	r.drawTextLine(x+1, y, inner, r.truncateTextToWidth(caption, inner), bg.Bold(true))
	if t.category != "" {
		r.drawTextLine(x+1, y+1, inner, r.truncateTextToWidth(cleanText(t.category), inner), muted.Italic(true))
	}
	r.drawTextLine(x+1, y+2, inner, r.truncateTextToWidth(cleanText(t.name), inner), muted.Dim(!selected))
}
