// Package raster turns one pass of ticker content into a flat RGBA
// bitmap the shader can sample. It is the native replacement for the
// reference implementation's markup-to-texture bridge: entries are
// drawn straight into an offscreen gg canvas instead of being
// serialized and re-decoded.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/richinsley/faultyterm/ticker"
)

// ErrNoContent is returned while the entry list produces a zero-width
// strip; callers defer and retry on the next tick.
var ErrNoContent = errors.New("raster: no measurable content")

// DefaultInterval is the rasterization cadence in seconds, frequent
// enough to capture the strip's continuous motion.
const DefaultInterval = 0.05

// Frame is one rasterized strip. A new frame fully replaces the
// previous texture contents; no history is kept.
type Frame struct {
	Pix    *image.RGBA
	Width  int
	Height int
}

// Box is the logical x-range one entry occupies within a single pass
// of the strip.
type Box struct {
	X float64
	W float64
}

// Layout describes the measured geometry of one pass, in logical
// (pre-device-pixel-ratio) units.
type Layout struct {
	Boxes         []Box
	SequenceWidth float64
}

// EntryAt returns the index of the entry covering logical x within the
// infinitely tiled track, or -1 for gap space or an empty layout.
func (l Layout) EntryAt(x float64) int {
	if l.SequenceWidth <= 0 {
		return -1
	}
	x = x - float64(int(x/l.SequenceWidth))*l.SequenceWidth
	if x < 0 {
		x += l.SequenceWidth
	}
	for i, b := range l.Boxes {
		if x >= b.X && x < b.X+b.W {
			return i
		}
	}
	return -1
}

// SizeHint carries the target geometry of a capture.
type SizeHint struct {
	EntryHeight float64 // logical height of the strip
	Gap         float64 // logical spacing appended after each entry
	PixelRatio  float64 // device pixels per logical pixel
}

// Capturer abstracts the content-to-bitmap bridge so a different
// backend (an icon atlas, an offscreen render target) can substitute.
type Capturer interface {
	// Capture renders one pass of the entries as a strip.
	Capture(entries []ticker.Entry, hint SizeHint) (*Frame, Layout, error)
	// CaptureScrolled renders the visible window of the scrolled track.
	CaptureScrolled(entries []ticker.Entry, hint SizeHint, offset, containerWidth float64) (*Frame, Layout, error)
}

// Rasterizer draws ticker entries with the embedded Go Regular face
// and decodes image entries from disk, caching the decode across
// ticks. Produced frames are transient.
type Rasterizer struct {
	source *text.FontSource
	face   text.Face
	fontPx float64
	images map[string]*gg.ImageBuf
	broken map[string]bool
}

// textScale is the font size relative to the entry height.
const textScale = 0.62

// NewRasterizer builds a rasterizer with the embedded default face.
func NewRasterizer() (*Rasterizer, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded font: %w", err)
	}
	return &Rasterizer{
		source: source,
		images: make(map[string]*gg.ImageBuf),
		broken: make(map[string]bool),
	}, nil
}

// Measure lays out one pass of the entries without drawing anything.
func (r *Rasterizer) Measure(entries []ticker.Entry, hint SizeHint) Layout {
	if hint.PixelRatio <= 0 {
		hint.PixelRatio = 1
	}
	face := r.faceFor(hint)
	var boxes []Box
	x := 0.0
	for _, e := range entries {
		w := r.entryWidth(e, face, hint)
		if w <= 0 {
			boxes = append(boxes, Box{X: x, W: 0})
			continue
		}
		boxes = append(boxes, Box{X: x, W: w})
		x += w + hint.Gap
	}
	return Layout{Boxes: boxes, SequenceWidth: x}
}

// Capture renders one full pass of the entries into a fresh bitmap
// sized to the measured strip scaled by the device pixel ratio.
func (r *Rasterizer) Capture(entries []ticker.Entry, hint SizeHint) (*Frame, Layout, error) {
	if hint.PixelRatio <= 0 {
		hint.PixelRatio = 1
	}
	layout := r.Measure(entries, hint)
	if layout.SequenceWidth <= 0 || hint.EntryHeight <= 0 {
		return nil, layout, ErrNoContent
	}

	pw := int(layout.SequenceWidth*hint.PixelRatio + 0.5)
	frame, err := r.render(entries, layout, hint, pw, []float64{0})
	return frame, layout, err
}

// CaptureScrolled renders the visible window of the tiled, scrolled
// track: copies of the pass laid out at i*S - offset, clipped to the
// container width. The tile count comes from the layout measured in
// this same call, so the window is fully covered even on the first
// capture and right after a re-measure. This is what feeds the
// shader's overlay band.
func (r *Rasterizer) CaptureScrolled(entries []ticker.Entry, hint SizeHint, offset, containerWidth float64) (*Frame, Layout, error) {
	if hint.PixelRatio <= 0 {
		hint.PixelRatio = 1
	}
	layout := r.Measure(entries, hint)
	if layout.SequenceWidth <= 0 || hint.EntryHeight <= 0 || containerWidth <= 0 {
		return nil, layout, ErrNoContent
	}

	tiles := ticker.TileCountFor(containerWidth, layout.SequenceWidth)
	origins := make([]float64, 0, tiles)
	for i := 0; i < tiles; i++ {
		origins = append(origins, float64(i)*layout.SequenceWidth-offset)
	}
	pw := int(containerWidth*hint.PixelRatio + 0.5)
	frame, err := r.render(entries, layout, hint, pw, origins)
	return frame, layout, err
}

// render draws one pass of the entries at each origin into a bitmap of
// the given pixel width.
func (r *Rasterizer) render(entries []ticker.Entry, layout Layout, hint SizeHint, pw int, origins []float64) (*Frame, error) {
	dpr := hint.PixelRatio
	ph := int(hint.EntryHeight*dpr + 0.5)
	dc := gg.NewContext(pw, ph)
	if dc == nil {
		return nil, errors.New("raster: drawing context unavailable")
	}
	defer dc.Close()

	dc.SetFont(r.faceFor(hint))
	dc.SetColor(color.White)

	for _, origin := range origins {
		for i, e := range entries {
			box := layout.Boxes[i]
			if box.W <= 0 {
				continue
			}
			x := (origin + box.X) * dpr
			if x+box.W*dpr < 0 || x > float64(pw) {
				continue
			}
			if e.Text != "" {
				_, th := dc.MeasureString(e.Text)
				baseline := (float64(ph) + th*0.62) / 2
				dc.DrawString(e.Text, x, baseline)
				continue
			}
			if img := r.loadImage(e.ImagePath); img != nil {
				dc.DrawImageEx(img, gg.DrawImageOptions{
					X:             x,
					Y:             0,
					DstWidth:      box.W * dpr,
					DstHeight:     float64(ph),
					Interpolation: gg.InterpBilinear,
					Opacity:       1.0,
				})
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return &Frame{Pix: out, Width: pw, Height: ph}, nil
}

// entryWidth returns the logical width one entry occupies.
func (r *Rasterizer) entryWidth(e ticker.Entry, face text.Face, hint SizeHint) float64 {
	if e.Text != "" {
		w, _ := text.Measure(e.Text, face)
		return w / hint.PixelRatio
	}
	if e.ImagePath == "" {
		return 0
	}
	iw, ih := float64(e.Width), float64(e.Height)
	if iw <= 0 || ih <= 0 {
		img := r.loadImage(e.ImagePath)
		if img == nil {
			return 0
		}
		bw, bh := img.Bounds()
		iw, ih = float64(bw), float64(bh)
	}
	if ih <= 0 {
		return 0
	}
	// Scale to the strip height preserving aspect.
	return iw * hint.EntryHeight / ih
}

func (r *Rasterizer) faceFor(hint SizeHint) text.Face {
	dpr := hint.PixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	px := hint.EntryHeight * textScale * dpr
	if r.face == nil || px != r.fontPx {
		r.face = r.source.Face(px)
		r.fontPx = px
	}
	return r.face
}

// loadImage decodes an image entry source once and caches it. A source
// that fails to decode is remembered as broken so it is not retried
// every tick.
func (r *Rasterizer) loadImage(path string) *gg.ImageBuf {
	if path == "" || r.broken[path] {
		return nil
	}
	if img, ok := r.images[path]; ok {
		return img
	}
	img, err := gg.LoadImage(path)
	if err != nil {
		r.broken[path] = true
		return nil
	}
	r.images[path] = img
	return img
}
