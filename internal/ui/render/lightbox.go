package render

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/lightbox/internal/preload"
	statepkg "github.com/kk-code-lab/lightbox/internal/state"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = '▀'

// drawLightbox shows the photo under the cursor on a dark backdrop with its
// counter, caption and previous/next markers.
func (r *Renderer) drawLightbox(state *statepkg.AppState, w, h int) {
	bg := tcell.StyleDefault.Background(r.theme.LightboxBg).Foreground(r.theme.CaptionFg)
	r.fillRect(0, 0, w, h, bg)

	d, ok := state.Gallery.Selected()
	if !ok {
		return
	}

	counter := state.Gallery.Counter()
	r.drawTextLine(1, 0, w-1, r.truncateTextToWidth(cleanText(state.Title), w-r.measureTextWidth(counter)-3), bg.Foreground(r.theme.TitleFg))
	r.drawTextLine(w-r.measureTextWidth(counter)-1, 0, r.measureTextWidth(counter), counter, bg.Foreground(r.theme.CounterFg))

	captionY := h - statepkg.FooterRows - 1
	imgTop, imgLeft := 1, 2
	imgW, imgH := w-4, captionY-imgTop
	if imgW > 0 && imgH > 0 {
		r.drawPhoto(state, d.Source(), d.AltText(), imgLeft, imgTop, imgW, imgH, bg)
	}

	if state.Gallery.Len() > 1 && imgH > 0 {
		mid := imgTop + imgH/2
		arrow := bg.Foreground(r.theme.CounterFg).Bold(true)
		r.screen.SetContent(0, mid, '‹', nil, arrow)
		r.screen.SetContent(w-1, mid, '›', nil, arrow)
	}

	if captionY >= 1 {
		caption := cleanText(d.Caption())
		if caption == "" {
			caption = cleanText(d.AltText())
		}
		r.drawCentered(0, captionY, w, caption, bg.Italic(true))
	}
}

// drawPhoto draws the decoded image, or a label while it loads or when it failed.
func (r *Renderer) drawPhoto(state *statepkg.AppState, src, alt string, x, y, w, h int, bg tcell.Style) {
	mid := y + h/2
	label := bg.Foreground(r.theme.CounterFg)

	if err := state.ImageError(src); err != nil {
		msg := r.loc.T("LoadFailed", map[string]any{"Name": filepath.Base(src)})
		if errors.Is(err, preload.ErrRemoteSource) {
			msg = r.loc.T("RemoteImage", map[string]any{"Source": src})
		}
		r.drawCentered(x, mid, w, cleanText(msg), bg.Foreground(r.theme.ErrorFg))
		if alt != "" {
			r.drawCentered(x, mid+1, w, cleanText(alt), label.Dim(true))
		}
		return
	}

	var img image.Image
	if r.images != nil {
		img, _ = r.images.Lookup(src)
	}
	if img == nil {
		r.drawCentered(x, mid, w, r.loc.T("Loading", nil), label)
		return
	}

	fitted := r.fitImage(src, img, w, h*2)
	b := fitted.Bounds()
	offX := x + (w-b.Dx())/2
	offY := y + (h-(b.Dy()+1)/2)/2
	for py := 0; py < b.Dy(); py += 2 {
		for px := 0; px < b.Dx(); px++ {
			top := toColor(fitted.At(b.Min.X+px, b.Min.Y+py))
			bottom := r.theme.LightboxBg
			if py+1 < b.Dy() {
				bottom = toColor(fitted.At(b.Min.X+px, b.Min.Y+py+1))
			}
			r.screen.SetContent(offX+px, offY+py/2, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

// scaledImage memoises the last scaled photo; redraws happen on every
// animation tick.
type scaledImage struct {
	src  string
	w, h int
	img  image.Image
}

// fitImage scales img to fit within maxW x maxH pixels, keeping its aspect.
func (r *Renderer) fitImage(src string, img image.Image, maxW, maxH int) image.Image {
	if c := r.scaled; c.img != nil && c.src == src && c.w == maxW && c.h == maxH {
		return c.img
	}
	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()
	out := img
	if iw > 0 && ih > 0 && (iw > maxW || ih > maxH) {
		scale := min(float64(maxW)/float64(iw), float64(maxH)/float64(ih))
		nw := max(1, int(float64(iw)*scale))
		nh := max(1, int(float64(ih)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		out = dst
	}
	r.scaled = scaledImage{src: src, w: maxW, h: maxH, img: out}
	return out
}

func toColor(c color.Color) tcell.Color {
	cr, cg, cb, _ := c.RGBA()
	return tcell.NewRGBColor(int32(cr>>8), int32(cg>>8), int32(cb>>8))
}
