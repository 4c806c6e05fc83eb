package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

// drawHearts paints the floating and falling hearts over everything but the
// status and footer rows.
func (r *Renderer) drawHearts(state *statepkg.AppState, w, h int) {
	if !state.EffectsEnabled || state.Hearts == nil {
		return
	}
	area := h - statepkg.FooterRows
	if area <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.HeartFg)
	for _, heart := range state.Hearts.Hearts() {
		x := int(heart.X * float64(w))
		y := int(heart.Y * float64(area-1))
		if x < 0 || x >= w || y < 0 || y >= area {
			continue
		}
		r.drawStyledRune(x, y, w, heart.Glyph, style)
	}
}

// drawNotice shows the active toast above the status line.
func (r *Renderer) drawNotice(state *statepkg.AppState, w, h int) {
	if !state.NoticeActive() {
		return
	}
	y := h - statepkg.FooterRows - 2
	if y < 0 {
		return
	}
	text := " " + cleanText(r.loc.T(state.Notice.ID, nil)) + " "
	style := tcell.StyleDefault.Background(r.theme.NoticeBg).Foreground(r.theme.NoticeFg).Bold(true)
	r.drawCentered(0, y, w, text, style)
}
