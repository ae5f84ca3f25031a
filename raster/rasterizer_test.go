package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/richinsley/faultyterm/ticker"
)

func testHint() SizeHint {
	return SizeHint{EntryHeight: 40, Gap: 10, PixelRatio: 1}
}

func imageEntries(n int) []ticker.Entry {
	entries := make([]ticker.Entry, n)
	for i := range entries {
		// Intrinsic size is known up front, so no decode is needed to
		// measure the pass.
		entries[i] = ticker.Entry{ImagePath: "logo.png", Width: 40, Height: 40}
	}
	return entries
}

func TestMeasureImageStrip(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	// Four 40px entries with 10px gaps: one pass is 200px, and a 500px
	// container needs 5 tiles.
	layout := r.Measure(imageEntries(4), testHint())
	require.Equal(t, 200.0, layout.SequenceWidth)
	require.Len(t, layout.Boxes, 4)
	require.Equal(t, 50.0, layout.Boxes[1].X)
	require.Equal(t, 5, ticker.TileCountFor(500, layout.SequenceWidth))
}

func TestMeasureScalesImagesToEntryHeight(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	layout := r.Measure([]ticker.Entry{
		{ImagePath: "wide.png", Width: 200, Height: 100},
	}, testHint())
	// 200x100 scaled to height 40 is 80 wide, plus one trailing gap.
	require.Equal(t, 90.0, layout.SequenceWidth)
	require.Equal(t, 80.0, layout.Boxes[0].W)
}

func TestCaptureTextStrip(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	hint := SizeHint{EntryHeight: 40, Gap: 12, PixelRatio: 2}
	frame, layout, err := r.Capture([]ticker.Entry{
		{Text: "ACME", Label: "acme"},
		{Text: "initech"},
	}, hint)
	require.NoError(t, err)
	require.Positive(t, layout.SequenceWidth)

	wantW := int(layout.SequenceWidth*2 + 0.5)
	require.Equal(t, wantW, frame.Width)
	require.Equal(t, 80, frame.Height)
	require.Equal(t, frame.Width, frame.Pix.Bounds().Dx())

	// Glyphs must actually land in the bitmap.
	opaque := 0
	for i := 3; i < len(frame.Pix.Pix); i += 4 {
		if frame.Pix.Pix[i] != 0 {
			opaque++
		}
	}
	require.Positive(t, opaque, "no glyph coverage in rendered strip")
}

func TestCaptureScrolledWindow(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	hint := SizeHint{EntryHeight: 32, Gap: 20, PixelRatio: 1}
	entries := []ticker.Entry{{Text: "alpha"}, {Text: "beta"}}
	layout := r.Measure(entries, hint)

	frame, _, err := r.CaptureScrolled(entries, hint, layout.SequenceWidth/2, 300)
	require.NoError(t, err)
	// The window is container-sized, not sequence-sized.
	require.Equal(t, 300, frame.Width)
	require.Equal(t, 32, frame.Height)

	opaque := 0
	for i := 3; i < len(frame.Pix.Pix); i += 4 {
		if frame.Pix.Pix[i] != 0 {
			opaque++
		}
	}
	require.Positive(t, opaque, "scrolled window should contain glyphs")
}

func TestCaptureScrolledCoversWideContainer(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	// A short sequence in a much wider window: the first capture must
	// already tile the whole container, with no warm-up tick where only
	// the minimum copy count is drawn.
	hint := SizeHint{EntryHeight: 40, Gap: 10, PixelRatio: 1}
	entries := []ticker.Entry{{Text: "MM"}}
	layout := r.Measure(entries, hint)
	require.Less(t, layout.SequenceWidth, 200.0)

	frame, _, err := r.CaptureScrolled(entries, hint, 0, 1200)
	require.NoError(t, err)
	require.Equal(t, 1200, frame.Width)

	// Every sequence-width column stripe must contain glyph pixels.
	stride := int(layout.SequenceWidth)
	for x0 := 0; x0 < frame.Width; x0 += stride {
		opaque := 0
		x1 := x0 + stride
		if x1 > frame.Width {
			x1 = frame.Width
		}
		for y := 0; y < frame.Height; y++ {
			for x := x0; x < x1; x++ {
				if frame.Pix.Pix[(y*frame.Width+x)*4+3] != 0 {
					opaque++
				}
			}
		}
		require.Positive(t, opaque, "no coverage in stripe starting at %d", x0)
	}
}

func TestCaptureEmptyContent(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	_, _, err = r.Capture(nil, testHint())
	require.ErrorIs(t, err, ErrNoContent)

	// A broken image source measures as zero width and the tick is
	// skipped rather than failing the surface.
	_, _, err = r.Capture([]ticker.Entry{{ImagePath: "does-not-exist.png"}}, testHint())
	require.ErrorIs(t, err, ErrNoContent)
}

func TestLayoutEntryAt(t *testing.T) {
	layout := Layout{
		Boxes:         []Box{{X: 0, W: 40}, {X: 50, W: 40}},
		SequenceWidth: 100,
	}
	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"first entry", 10, 0},
		{"gap", 45, -1},
		{"second entry", 60, 1},
		{"wraps into next tile", 110, 0},
		{"negative wraps back", -40, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layout.EntryAt(tt.x); got != tt.want {
				t.Errorf("EntryAt(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}
