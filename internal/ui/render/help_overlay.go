package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/locale"
	textutil "github.com/kk-code-lab/lightbox/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(loc *locale.Localizer) []string {
	sections := []helpOverlaySection{
		{
			title: loc.T("HelpSectionGrid", nil),
			entries: []helpOverlayEntry{
				{keys: "←↑↓→ / hjkl", desc: loc.T("HelpMoveSelection", nil)},
				{keys: "↵ / Space", desc: loc.T("HelpOpenPhoto", nil)},
				{keys: "Tab / c / C", desc: loc.T("HelpCycleCategory", nil)},
			},
		},
		{
			title: loc.T("HelpSectionLightbox", nil),
			entries: []helpOverlayEntry{
				{keys: "← / → (h/l)", desc: loc.T("HelpPrevNext", nil)},
				{keys: "Home / End", desc: loc.T("HelpFirstLast", nil)},
				{keys: "1-9", desc: loc.T("HelpJump", nil)},
				{keys: "Esc / q / ⌫", desc: loc.T("HelpClose", nil)},
				{keys: "mouse", desc: loc.T("HelpSwipe", nil)},
				{keys: "y", desc: loc.T("HelpYank", nil)},
				{keys: "o", desc: loc.T("HelpOpenExternal", nil)},
			},
		},
		{
			title: loc.T("HelpSectionGeneral", nil),
			entries: []helpOverlayEntry{
				{keys: "?", desc: loc.T("HelpToggle", nil)},
				{keys: "q / Ctrl+C", desc: loc.T("HelpQuit", nil)},
			},
		},
	}

	lines := make([]string, 0, 20)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fillRect(0, 0, w, h, baseStyle)

	headerStyle := baseStyle.Foreground(r.theme.TitleFg).Bold(true)
	r.drawCentered(0, 0, w, " "+r.loc.T("HelpTitle", nil)+" ", headerStyle)

	lines := buildHelpOverlayLines(r.loc)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth(r.loc.T("HelpFooter", nil), w)
		r.drawTextLine(0, h-1, w, footer, headerStyle.Bold(false))
	}
}
