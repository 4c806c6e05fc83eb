package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
)

// buildFooterHelpText returns the contextual key hints with leading/trailing padding.
func (r *Renderer) buildFooterHelpText(state *statepkg.AppState) string {
	parts := []string{}
	if state.Mode() == statepkg.ModeLightbox {
		parts = append(parts, r.loc.T("FooterLightbox", nil))
		if state.ClipboardAvailable {
			parts = append(parts, "y: "+r.loc.T("HelpYank", nil))
		}
		if state.OpenerAvailable {
			parts = append(parts, "o: "+r.loc.T("HelpOpenExternal", nil))
		}
	} else {
		parts = append(parts, r.loc.T("FooterGrid", nil))
	}
	return " " + strings.Join(parts, "  ") + " "
}

func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Dim(true)
	if state.Mode() == statepkg.ModeLightbox {
		style = style.Background(r.theme.LightboxBg).Foreground(r.theme.CounterFg)
	}
	r.fillRect(0, y, w, 1, style)
	text := r.truncateTextToWidth(r.buildFooterHelpText(state), w)
	r.drawTextLine(0, y, w, text, style)
}
