// Package options carries the full configuration surface of the
// effect. Every parameter has a default; callers override any subset
// through flags or a YAML config file.
package options

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/richinsley/faultyterm/ticker"
)

// TickerOptions configures the logo loop, both standalone and as the
// overlay source.
type TickerOptions struct {
	Entries     []ticker.Entry
	Speed       float64 // pixels/second, sign flips direction again
	Direction   ticker.Direction
	EntryHeight float64 // logical px
	Gap         float64 // logical px between entries
	HoverScale  float64 // 1 disables the hover scale-up
	Background  string  // hex, marquee background
	FadeEdges   bool
	FadeWidth   float64 // fraction of the container width
	FadeColor   string  // hex, edge fade target
}

// ShaderOptions configures the terminal effect's uniform table.
type ShaderOptions struct {
	Scale               float64
	GridMulX            float64
	GridMulY            float64
	DigitSize           float64
	TimeScale           float64
	Paused              bool
	ScanlineIntensity   float64
	GlitchAmount        float64
	FlickerAmount       float64
	NoiseAmplitude      float64
	ChromaticAberration float64 // pixels
	DitherAmount        float64
	Curvature           float64
	Tint                string // hex
	MouseReact          bool
	MouseStrength       float64
	PixelRatio          float64 // 0 means take it from the window
	PageLoadAnimation   bool
	Brightness          float64
	OverlayHeight       float64 // fraction of the frame height
}

// Options is the merged configuration for one mount.
type Options struct {
	Mode   string // "terminal" or "marquee"
	Width  int
	Height int

	// Offline rendering to a video file.
	Record     bool
	Duration   float64
	FPS        int
	OutputFile string
	FFMPEGPath string

	Ticker TickerOptions
	Shader ShaderOptions
}

// Default returns the fully populated default configuration.
func Default() *Options {
	return &Options{
		Mode:       "terminal",
		Width:      1280,
		Height:     720,
		Duration:   10.0,
		FPS:        60,
		OutputFile: "output.mp4",
		Ticker: TickerOptions{
			Entries: []ticker.Entry{
				{Text: "FAULTY"},
				{Text: "TERMINAL"},
				{Text: "SYSTEMS"},
			},
			Speed:       120,
			Direction:   ticker.DirectionLeft,
			EntryHeight: 48,
			Gap:         40,
			HoverScale:  1,
			Background:  "#060010",
			FadeWidth:   0.08,
			FadeColor:   "#060010",
		},
		Shader: ShaderOptions{
			Scale:             1.5,
			GridMulX:          2,
			GridMulY:          1,
			DigitSize:         0.8,
			TimeScale:         0.3,
			ScanlineIntensity: 0.5,
			GlitchAmount:      1,
			FlickerAmount:     0.7,
			NoiseAmplitude:    1,
			Curvature:         0.1,
			Tint:              "#a7ef9e",
			MouseReact:        true,
			MouseStrength:     0.2,
			PageLoadAnimation: true,
			Brightness:        0.6,
			OverlayHeight:     0.22,
		},
	}
}

// ParseHexColor converts a "#rrggbb" string to normalized channels.
func ParseHexColor(hex string) ([3]float32, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// TintRGB returns the shader tint as normalized channels, falling back
// to white on a malformed value so the surface still renders.
func (s *ShaderOptions) TintRGB() [3]float32 {
	rgb, err := ParseHexColor(s.Tint)
	if err != nil {
		return [3]float32{1, 1, 1}
	}
	return rgb
}
