package render

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/locale"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	"github.com/kk-code-lab/lightbox/internal/textutil"
)

// ImageLookup returns decoded photos by source. preload.Cache implements it.
type ImageLookup interface {
	Lookup(source string) (image.Image, bool)
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	images           ImageLookup
	loc              *locale.Localizer
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	layoutMu sync.Mutex
	layout   Layout

	scaled scaledImage
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// SetImages sets where decoded photos are read from.
func (r *Renderer) SetImages(images ImageLookup) {
	r.images = images
}

// SetLocalizer sets the UI language. nil means English.
func (r *Renderer) SetLocalizer(loc *locale.Localizer) {
	r.loc = loc
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if state == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.setLayout(Layout{})
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	if state.Mode() == statepkg.ModeLightbox {
		r.setLayout(Layout{})
		r.drawLightbox(state, w, h)
	} else {
		r.drawHeader(state, w)
		r.drawCategoryBar(state, w)
		r.drawGrid(state, w, h)
	}
	r.drawHearts(state, w, h)
	r.drawNotice(state, w, h)
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)

	r.screen.Show()
}

// drawHeader renders the title and the typewriter catchphrase.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	titleStyle := tcell.StyleDefault.Foreground(r.theme.TitleFg).Bold(true)
	r.drawCentered(0, 0, w, cleanText(state.Title), titleStyle)

	phrase := cleanText(state.Catchphrase)
	showCursor := false
	if state.EffectsEnabled {
		elapsed := state.Elapsed()
		phrase = textutil.SanitizeTerminalText(state.Typewriter.Visible(elapsed))
		showCursor = state.Typewriter.CursorVisible(elapsed)
	}
	style := tcell.StyleDefault.Foreground(r.theme.CatchphraseFg).Italic(true)
	text := phrase
	if showCursor {
		text += "|"
	}
	// Centre on the full phrase so the text does not shift while typing.
	full := r.measureTextWidth(cleanText(state.Catchphrase)) + 1
	x := (w - full) / 2
	if x < 0 {
		x = 0
	}
	r.drawTextLine(x, 1, w-x, r.truncateTextToWidth(text, w-x), style)
}

// drawCategoryBar lists the filter choices with the active one highlighted.
func (r *Renderer) drawCategoryBar(state *statepkg.AppState, w int) {
	const y = 2
	base := tcell.StyleDefault.Foreground(r.theme.CategoryFg)
	active := tcell.StyleDefault.Background(r.theme.CategoryActiveBg).Foreground(r.theme.CategoryActiveFg).Bold(true)

	labels := make([]string, len(state.Categories))
	total := 0
	for i, c := range state.Categories {
		labels[i] = " " + r.categoryLabel(c) + " "
		total += r.measureTextWidth(labels[i]) + 1
	}
	x := (w - total) / 2
	if x < 0 {
		x = 0
	}
	for i, label := range labels {
		if x >= w {
			break
		}
		style := base
		if i == state.CategoryIndex {
			style = active
		}
		x = r.drawTextLine(x, y, w-x, label, style) + 1
	}
}

func (r *Renderer) categoryLabel(category string) string {
	if category == "" || category == "all" {
		return r.loc.T("CategoryAll", nil)
	}
	return cleanText(category)
}

// drawStatusLine shows the last error, or the photo count for the view.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 2
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if state.Mode() == statepkg.ModeLightbox {
		style = style.Background(r.theme.LightboxBg).Foreground(r.theme.CounterFg)
	}
	r.fillRect(0, y, w, 1, style)

	if state.LastError != nil {
		msg := cleanText(r.loc.ErrorMessage(state.LastError))
		r.drawTextLine(1, y, w-1, r.truncateTextToWidth(msg, w-2), style.Foreground(r.theme.ErrorFg))
		return
	}
	if state.Mode() == statepkg.ModeLightbox {
		return
	}
	summary := r.loc.Plural("PhotoCount", state.Gallery.Len())
	if src := state.CurrentSource(); src != "" {
		summary += "  " + cleanText(src)
	}
	r.drawTextLine(1, y, w-1, r.truncateTextToWidth(summary, w-2), style.Dim(true))
}
