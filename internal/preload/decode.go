// Package preload decodes photos ahead of display so lightbox navigation does
// not wait on disk.
package preload

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	fsutil "github.com/kk-code-lab/lightbox/internal/fs"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrRemoteSource is returned for http(s) sources; only local files are decoded.
var ErrRemoteSource = errors.New("remote images are not fetched")

// Decode reads the image at path and downsizes it so that neither edge
// exceeds maxDim. maxDim <= 0 keeps the original size.
func Decode(path string, maxDim int) (image.Image, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, ErrRemoteSource
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			if format, serr := fsutil.DetectImageFormat(path); serr == nil && format != "" {
				return nil, fmt.Errorf("decode %s (looks like %s): %w", path, format, err)
			}
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Fit(img, maxDim, maxDim), nil
}

// Fit scales img down, preserving aspect ratio, so it fits inside maxW x maxH.
// Images that already fit are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW <= 0 || maxH <= 0 || w == 0 || h == 0 || (w <= maxW && h <= maxH) {
		return img
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
